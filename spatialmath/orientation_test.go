package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestQuatFromAxesIdentity(t *testing.T) {
	q := QuatFromAxes(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1})
	test.That(t, QuaternionAlmostEqual(q, NewZeroOrientation(), 1e-9), test.ShouldBeTrue)
}

func TestQuatFromAxesRoundTrip(t *testing.T) {
	// a basis rotated 90 degrees about z
	x := r3.Vector{Y: 1}
	y := r3.Vector{X: -1}
	z := r3.Vector{Z: 1}
	q := QuatFromAxes(x, y, z)
	gotX, gotY, gotZ := AxesFromQuat(q)
	test.That(t, R3VectorAlmostEqual(gotX, x, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(gotY, y, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(gotZ, z, 1e-9), test.ShouldBeTrue)

	// a trickier basis, rotated about an arbitrary axis
	rot := NewQuatFromAxisAngle(r3.Vector{X: 1, Y: 2, Z: 3}, 1.1)
	x, y, z = AxesFromQuat(rot)
	test.That(t, QuaternionAlmostEqual(QuatFromAxes(x, y, z), rot, 1e-9), test.ShouldBeTrue)
}

func TestQuatRotateVector(t *testing.T) {
	q := NewQuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2)
	got := QuatRotateVector(q, r3.Vector{X: 1})
	test.That(t, R3VectorAlmostEqual(got, r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestQuatToRotationVector(t *testing.T) {
	q := NewQuatFromAxisAngle(r3.Vector{Y: 1}, 0.5)
	rv := QuatToRotationVector(q)
	test.That(t, R3VectorAlmostEqual(rv, r3.Vector{Y: 0.5}, 1e-9), test.ShouldBeTrue)

	// the identity has a zero rotation vector
	test.That(t, QuatToRotationVector(NewZeroOrientation()).Norm(), test.ShouldAlmostEqual, 0)

	// negated quaternions represent the same rotation
	neg := quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
	test.That(t, R3VectorAlmostEqual(QuatToRotationVector(neg), rv, 1e-9), test.ShouldBeTrue)
}

func TestComposeAndInverse(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, NewQuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/3))
	test.That(t, PoseAlmostEqual(Compose(p, PoseInverse(p)), NewZeroPose(), 1e-9), test.ShouldBeTrue)

	// translation composed under a rotated frame
	rot := NewPoseFromOrientation(NewQuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2))
	moved := Compose(rot, NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, R3VectorAlmostEqual(moved.Point(), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestPoseBetween(t *testing.T) {
	a := NewPose(r3.Vector{X: 1}, NewQuatFromAxisAngle(r3.Vector{X: 1}, 0.2))
	b := NewPose(r3.Vector{Y: -2, Z: 1}, NewQuatFromAxisAngle(r3.Vector{Y: 1}, 1.2))
	test.That(t, PoseAlmostEqual(Compose(a, PoseBetween(a, b)), b, 1e-9), test.ShouldBeTrue)
}
