// Package environment models the kinematic and collision world a planning run executes against:
// a robot model, named manipulator groups over it, current joint state, and named collision
// bodies attached into the scene.
package environment

import (
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/smith-doug/descartes-light/referenceframe"
	"github.com/smith-doug/descartes-light/spatialmath"
)

// Environment holds the kinematic world state. It is constructed before a pipeline runs and is
// read-only for the duration of a planning run.
type Environment struct {
	mu     sync.RWMutex
	model  *referenceframe.SimpleModel
	logger golog.Logger

	jointValues  []float64
	manipulators map[string]*Manipulator
	attached     []*Body
}

// Body is a named collision geometry attached into the scene at a fixed transform.
type Body struct {
	Name      string
	Geometry  spatialmath.Geometry
	Transform spatialmath.Pose
}

// New creates an Environment around the given robot model with all joints at zero.
func New(model *referenceframe.SimpleModel, logger golog.Logger) (*Environment, error) {
	if model == nil {
		return nil, &ConfigurationError{Reason: "no robot model"}
	}
	return &Environment{
		model:        model,
		logger:       logger,
		jointValues:  make([]float64, len(model.DoF())),
		manipulators: map[string]*Manipulator{},
	}, nil
}

// Model returns the underlying robot model.
func (e *Environment) Model() *referenceframe.SimpleModel {
	return e.model
}

// AddManipulator registers a named kinematic group solving the chain from the model base out to
// tipLink. The tip link is the group's control point for pose targets.
func (e *Environment) AddManipulator(name, tipLink string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.model.HasFrame(tipLink) {
		return NewLinkResolutionError(tipLink)
	}
	if _, ok := e.manipulators[name]; ok {
		return errors.Errorf("manipulator %q already registered", name)
	}
	e.manipulators[name] = &Manipulator{name: name, tipLink: tipLink, env: e}
	return nil
}

// Manipulator resolves a named kinematic group, or fails with a ResolutionError.
func (e *Environment) Manipulator(name string) (*Manipulator, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.manipulators[name]
	if !ok {
		return nil, NewGroupResolutionError(name)
	}
	return m, nil
}

// SetState sets the current values of the named joints. Unnamed joints keep their values.
func (e *Environment) SetState(jointNames []string, values []float64) error {
	if len(jointNames) != len(values) {
		return errors.Errorf("got %d joint names but %d values", len(jointNames), len(values))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	all := e.model.JointNames()
	for i, name := range jointNames {
		found := false
		for j, candidate := range all {
			if candidate == name {
				e.jointValues[j] = values[i]
				found = true
				break
			}
		}
		if !found {
			return NewLinkResolutionError(name)
		}
	}
	return nil
}

// CurrentJointValues returns a copy of the current joint values of the model, in kinematic order.
func (e *Environment) CurrentJointValues() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	values := make([]float64, len(e.jointValues))
	copy(values, e.jointValues)
	return values
}

// AttachBody adds a named collision body into the scene at a fixed world transform. Attached
// bodies participate in collision checking against the robot's link geometries.
func (e *Environment) AttachBody(body *Body) error {
	if body.Geometry == nil {
		return errors.Errorf("body %q has no geometry", body.Name)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.attached {
		if existing.Name == body.Name {
			return errors.Errorf("body %q already attached", body.Name)
		}
	}
	if body.Transform == nil {
		body.Transform = spatialmath.NewZeroPose()
	}
	e.attached = append(e.attached, body)
	e.logger.Debugw("attached collision body", "name", body.Name)
	return nil
}

// attachedGeometries returns the world-posed geometries of all attached bodies, keyed by body name.
func (e *Environment) attachedGeometries() map[string]spatialmath.Geometry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	geometries := make(map[string]spatialmath.Geometry, len(e.attached))
	for _, body := range e.attached {
		geometries[body.Name] = body.Geometry.Transform(body.Transform)
	}
	return geometries
}
