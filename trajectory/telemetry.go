package trajectory

import (
	"encoding/json"
	"io"

	"github.com/edaniels/golog"

	"github.com/smith-doug/descartes-light/environment"
	"github.com/smith-doug/descartes-light/spatialmath"
)

// Publisher emits diagnostic state for offline inspection. Publishing is fire and forget:
// failures are logged and never propagate to the planning pipeline.
type Publisher struct {
	w      io.Writer
	logger golog.Logger
}

// NewPublisher returns a Publisher writing JSON lines to w.
func NewPublisher(w io.Writer, logger golog.Logger) *Publisher {
	return &Publisher{w: w, logger: logger}
}

type posesMessage struct {
	Kind  string                   `json:"kind"`
	Poses []spatialmath.PoseConfig `json:"poses"`
}

type worldStateMessage struct {
	Kind  string                  `json:"kind"`
	State *environment.WorldState `json:"state"`
}

// PublishPoses writes a toolpath as one JSON line.
func (p *Publisher) PublishPoses(poses []spatialmath.Pose) {
	msg := posesMessage{Kind: "toolpath", Poses: make([]spatialmath.PoseConfig, 0, len(poses))}
	for _, pose := range poses {
		msg.Poses = append(msg.Poses, spatialmath.NewPoseConfig(pose))
	}
	p.publish(msg)
}

// PublishWorldState writes an environment snapshot as one JSON line.
func (p *Publisher) PublishWorldState(state *environment.WorldState) {
	p.publish(worldStateMessage{Kind: "world_state", State: state})
}

func (p *Publisher) publish(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		p.logger.Warnw("error marshaling telemetry message", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := p.w.Write(data); err != nil {
		p.logger.Warnw("error publishing telemetry message", "error", err)
	}
}
