// Package referenceframe defines frames of reference for a kinematic chain and the math for
// transforming between them.
package referenceframe

import (
	"github.com/golang/geo/r3"

	"github.com/smith-doug/descartes-light/spatialmath"
)

// World is the reserved name of the root frame of any model.
const World = "world"

// Limit represents the limits of motion for a frame.
type Limit struct {
	Min float64
	Max float64
}

// Frame represents a single frame in a kinematic chain, e.g. a link or a joint.
type Frame interface {
	// Name returns the name of the frame.
	Name() string

	// Transform is the pose (rotation and translation) that goes FROM the current frame TO the
	// parent's frame. It accepts one Input per degree of freedom of the frame.
	Transform([]Input) (spatialmath.Pose, error)

	// Geometry returns the collision geometry associated with the frame, posed at the given
	// inputs relative to the frame's parent, or nil if the frame carries no geometry.
	Geometry([]Input) (spatialmath.Geometry, error)

	// DoF returns a slice describing the min and max of each degree of freedom of the frame.
	// Frames that don't move return an empty slice.
	DoF() []Limit
}

// a staticFrame is a simple coordinate system that encodes a fixed translation and rotation
// from the current frame to the parent frame.
type staticFrame struct {
	name     string
	pose     spatialmath.Pose
	geometry spatialmath.Geometry
}

// NewStaticFrame creates a frame given a pose relative to its parent. The pose is fixed for all
// time. Pose is not allowed to be nil.
func NewStaticFrame(name string, pose spatialmath.Pose) (Frame, error) {
	return NewStaticFrameWithGeometry(name, pose, nil)
}

// NewStaticFrameWithGeometry creates a static frame which also carries a collision geometry.
func NewStaticFrameWithGeometry(name string, pose spatialmath.Pose, geometry spatialmath.Geometry) (Frame, error) {
	if pose == nil {
		return nil, ErrNoModelInformation
	}
	return &staticFrame{name, pose, geometry}, nil
}

func (sf *staticFrame) Name() string {
	return sf.name
}

func (sf *staticFrame) Transform(inputs []Input) (spatialmath.Pose, error) {
	if len(inputs) != 0 {
		return nil, NewIncorrectInputLengthError(len(inputs), 0)
	}
	return sf.pose, nil
}

func (sf *staticFrame) Geometry(inputs []Input) (spatialmath.Geometry, error) {
	if len(inputs) != 0 {
		return nil, NewIncorrectInputLengthError(len(inputs), 0)
	}
	if sf.geometry == nil {
		return nil, nil
	}
	return sf.geometry.Transform(sf.pose), nil
}

func (sf *staticFrame) DoF() []Limit {
	return []Limit{}
}

// a revoluteFrame is a frame that rotates about a fixed axis relative to its parent.
type revoluteFrame struct {
	name  string
	axis  r3.Vector
	limit Limit
}

// NewRevoluteFrame creates a frame which rotates about the given axis, bounded by the given limit.
func NewRevoluteFrame(name string, axis r3.Vector, limit Limit) (Frame, error) {
	if axis.Norm() == 0 {
		return nil, ErrNoModelInformation
	}
	return &revoluteFrame{name, axis.Normalize(), limit}, nil
}

func (rf *revoluteFrame) Name() string {
	return rf.name
}

func (rf *revoluteFrame) Transform(inputs []Input) (spatialmath.Pose, error) {
	if len(inputs) != 1 {
		return nil, NewIncorrectInputLengthError(len(inputs), 1)
	}
	if inputs[0].Value < rf.limit.Min || inputs[0].Value > rf.limit.Max {
		return nil, newOOBError(rf.name, inputs[0].Value, rf.limit)
	}
	return spatialmath.NewPoseFromOrientation(spatialmath.NewQuatFromAxisAngle(rf.axis, inputs[0].Value)), nil
}

func (rf *revoluteFrame) Geometry(inputs []Input) (spatialmath.Geometry, error) {
	if len(inputs) != 1 {
		return nil, NewIncorrectInputLengthError(len(inputs), 1)
	}
	return nil, nil
}

func (rf *revoluteFrame) DoF() []Limit {
	return []Limit{rf.limit}
}
