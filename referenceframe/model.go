package referenceframe

import (
	"github.com/smith-doug/descartes-light/spatialmath"
)

// SimpleModel is a serial kinematic chain: an ordered list of frames from the base of the chain
// out to its most distal link.
type SimpleModel struct {
	name string
	// ordTransforms is the list of transforms ordered from the base to the end effector
	ordTransforms []Frame
	limits        []Limit
}

// NewSimpleModel constructs a new model from an ordered list of frames.
func NewSimpleModel(name string, frames []Frame) *SimpleModel {
	m := &SimpleModel{name: name, ordTransforms: frames}
	for _, f := range frames {
		m.limits = append(m.limits, f.DoF()...)
	}
	return m
}

// Name returns the name of this model.
func (m *SimpleModel) Name() string {
	return m.name
}

// DoF returns the movement limits of each degree of freedom of the model.
func (m *SimpleModel) DoF() []Limit {
	return m.limits
}

// JointNames returns the names of the moving frames of the model, in kinematic order.
func (m *SimpleModel) JointNames() []string {
	var names []string
	for _, f := range m.ordTransforms {
		if len(f.DoF()) > 0 {
			names = append(names, f.Name())
		}
	}
	return names
}

// FrameNames returns the names of all frames of the model, in kinematic order.
func (m *SimpleModel) FrameNames() []string {
	names := make([]string, 0, len(m.ordTransforms))
	for _, f := range m.ordTransforms {
		names = append(names, f.Name())
	}
	return names
}

// Transform takes a list of joint angles in radians and computes the pose of the most distal
// frame relative to the base.
func (m *SimpleModel) Transform(inputs []Input) (spatialmath.Pose, error) {
	if len(m.ordTransforms) == 0 {
		return nil, ErrNoModelInformation
	}
	return m.LinkTransform(inputs, m.ordTransforms[len(m.ordTransforms)-1].Name())
}

// LinkTransform computes the pose of the named frame relative to the base of the model for the
// given joint inputs.
func (m *SimpleModel) LinkTransform(inputs []Input, linkName string) (spatialmath.Pose, error) {
	if len(inputs) != len(m.limits) {
		return nil, NewIncorrectInputLengthError(len(inputs), len(m.limits))
	}
	composed := spatialmath.NewZeroPose()
	idx := 0
	for _, f := range m.ordTransforms {
		dof := len(f.DoF())
		pose, err := f.Transform(inputs[idx : idx+dof])
		if err != nil {
			return nil, err
		}
		idx += dof
		composed = spatialmath.Compose(composed, pose)
		if f.Name() == linkName {
			return composed, nil
		}
	}
	return nil, NewFrameNotFoundError(linkName)
}

// HasFrame reports whether the model contains a frame with the given name.
func (m *SimpleModel) HasFrame(name string) bool {
	for _, f := range m.ordTransforms {
		if f.Name() == name {
			return true
		}
	}
	return false
}

// Geometries returns the collision geometries of all frames of the model, posed in the base
// frame for the given joint inputs, keyed by frame name.
func (m *SimpleModel) Geometries(inputs []Input) (map[string]spatialmath.Geometry, error) {
	if len(inputs) != len(m.limits) {
		return nil, NewIncorrectInputLengthError(len(inputs), len(m.limits))
	}
	geometries := make(map[string]spatialmath.Geometry)
	composed := spatialmath.NewZeroPose()
	idx := 0
	for _, f := range m.ordTransforms {
		dof := len(f.DoF())
		geometry, err := f.Geometry(inputs[idx : idx+dof])
		if err != nil {
			return nil, err
		}
		if geometry != nil {
			geometries[f.Name()] = geometry.Transform(composed)
		}
		pose, err := f.Transform(inputs[idx : idx+dof])
		if err != nil {
			return nil, err
		}
		idx += dof
		composed = spatialmath.Compose(composed, pose)
	}
	return geometries, nil
}
