package environment

import (
	"github.com/smith-doug/descartes-light/spatialmath"
)

// BodyState is the serialized pose of a single attached collision body.
type BodyState struct {
	Name string                 `json:"name"`
	Pose spatialmath.PoseConfig `json:"pose"`
}

// WorldState is a serializable snapshot of the environment, published to telemetry consumers.
type WorldState struct {
	JointNames  []string    `json:"joint_names"`
	JointValues []float64   `json:"joint_values"`
	Bodies      []BodyState `json:"bodies"`
}

// Snapshot captures the current state of the environment.
func (e *Environment) Snapshot() *WorldState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	state := &WorldState{
		JointNames:  e.model.JointNames(),
		JointValues: append([]float64{}, e.jointValues...),
	}
	for _, body := range e.attached {
		state.Bodies = append(state.Bodies, BodyState{
			Name: body.Name,
			Pose: spatialmath.NewPoseConfig(body.Transform),
		})
	}
	return state
}
