// Package spatialmath defines spatial mathematical operations.
package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6dof pose, position and orientation, of an object or a frame of reference.
type Pose interface {
	Point() r3.Vector
	Orientation() quat.Number
}

type basicPose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return &basicPose{orientation: quat.Number{Real: 1}}
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(point r3.Vector, o quat.Number) Pose {
	return &basicPose{point, o}
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
// It will have the same orientation as the frame it is in reference to.
func NewPoseFromPoint(point r3.Vector) Pose {
	return &basicPose{point, quat.Number{Real: 1}}
}

// NewPoseFromOrientation takes in an orientation and returns a Pose at the origin.
func NewPoseFromOrientation(o quat.Number) Pose {
	return &basicPose{orientation: o}
}

func (p *basicPose) Point() r3.Vector {
	return p.point
}

func (p *basicPose) Orientation() quat.Number {
	return p.orientation
}

// Compose treats Poses as functions A(x) and B(x), and produces a new function C(x) = A(B(x)).
// The position of the composed pose is the position of b rotated into a's frame, offset by a's position.
func Compose(a, b Pose) Pose {
	return &basicPose{
		point:       a.Point().Add(QuatRotateVector(a.Orientation(), b.Point())),
		orientation: Normalize(quat.Mul(a.Orientation(), b.Orientation())),
	}
}

// PoseInverse returns the pose which undoes the given pose, so that Compose(p, PoseInverse(p))
// is the zero pose.
func PoseInverse(p Pose) Pose {
	invOrient := quat.Conj(p.Orientation())
	return &basicPose{
		point:       QuatRotateVector(invOrient, p.Point().Mul(-1)),
		orientation: invOrient,
	}
}

// PoseBetween returns the pose x such that Compose(a, x) = b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// PoseAlmostEqual checks whether both the position and orientation of two poses are within epsilon.
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) &&
		QuaternionAlmostEqual(a.Orientation(), b.Orientation(), epsilon)
}

// PoseToString outputs a brief human-readable form of the pose for logging.
func PoseToString(p Pose) string {
	pt, o := p.Point(), p.Orientation()
	return fmt.Sprintf("(%.3f, %.3f, %.3f; %.3f|%.3f|%.3f|%.3f)", pt.X, pt.Y, pt.Z, o.Real, o.Imag, o.Jmag, o.Kmag)
}
