package environment

import (
	"github.com/smith-doug/descartes-light/referenceframe"
	"github.com/smith-doug/descartes-light/spatialmath"
)

// Manipulator is a named kinematic group resolved against an Environment. It exposes the joint
// list, limits, forward kinematics, and posed collision geometries of the group.
type Manipulator struct {
	name    string
	tipLink string
	env     *Environment
}

// Name returns the name the group was registered under.
func (m *Manipulator) Name() string {
	return m.name
}

// TipLink returns the name of the group's control-point link.
func (m *Manipulator) TipLink() string {
	return m.tipLink
}

// JointNames returns the ordered names of the group's joints.
func (m *Manipulator) JointNames() []string {
	return m.env.model.JointNames()
}

// DoF returns the movement limits of each joint of the group.
func (m *Manipulator) DoF() []referenceframe.Limit {
	return m.env.model.DoF()
}

// CurrentJointValues returns the current joint values of the group.
func (m *Manipulator) CurrentJointValues() []float64 {
	return m.env.CurrentJointValues()
}

// Transform computes the pose of the group's tip link for the given joint inputs.
func (m *Manipulator) Transform(inputs []referenceframe.Input) (spatialmath.Pose, error) {
	return m.env.model.LinkTransform(inputs, m.tipLink)
}

// LinkTransform computes the pose of any named link of the group for the given joint inputs.
func (m *Manipulator) LinkTransform(inputs []referenceframe.Input, linkName string) (spatialmath.Pose, error) {
	return m.env.model.LinkTransform(inputs, linkName)
}

// HasLink reports whether the group's chain contains the named link.
func (m *Manipulator) HasLink(name string) bool {
	return m.env.model.HasFrame(name)
}

// CollisionEntities returns all collision geometries relevant to the group at the given joint
// inputs: the robot's link geometries posed by forward kinematics plus all attached bodies,
// keyed by body name.
func (m *Manipulator) CollisionEntities(inputs []referenceframe.Input) (map[string]spatialmath.Geometry, error) {
	geometries, err := m.env.model.Geometries(inputs)
	if err != nil {
		return nil, err
	}
	for name, geometry := range m.env.attachedGeometries() {
		geometries[name] = geometry
	}
	return geometries, nil
}
