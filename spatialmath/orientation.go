package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// Normalize returns the unit quaternion with the same direction as q.
func Normalize(q quat.Number) quat.Number {
	length := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if length == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Number{Real: q.Real / length, Imag: q.Imag / length, Jmag: q.Jmag / length, Kmag: q.Kmag / length}
}

// QuatRotateVector rotates the vector v by the rotation represented by the unit quaternion q.
func QuatRotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

// QuatFromAxes builds the unit quaternion whose rotation matrix has the given x, y, and z
// axes as columns. The axes must form a right-handed orthonormal basis.
func QuatFromAxes(x, y, z r3.Vector) quat.Number {
	// Shepperd's method, branching on the largest diagonal element for numerical stability.
	var q quat.Number
	trace := x.X + y.Y + z.Z
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		q.Real = 0.25 / s
		q.Imag = (y.Z - z.Y) * s
		q.Jmag = (z.X - x.Z) * s
		q.Kmag = (x.Y - y.X) * s
	case x.X > y.Y && x.X > z.Z:
		s := 2.0 * math.Sqrt(1.0+x.X-y.Y-z.Z)
		q.Real = (y.Z - z.Y) / s
		q.Imag = 0.25 * s
		q.Jmag = (y.X + x.Y) / s
		q.Kmag = (z.X + x.Z) / s
	case y.Y > z.Z:
		s := 2.0 * math.Sqrt(1.0+y.Y-x.X-z.Z)
		q.Real = (z.X - x.Z) / s
		q.Imag = (y.X + x.Y) / s
		q.Jmag = 0.25 * s
		q.Kmag = (z.Y + y.Z) / s
	default:
		s := 2.0 * math.Sqrt(1.0+z.Z-x.X-y.Y)
		q.Real = (x.Y - y.X) / s
		q.Imag = (z.X + x.Z) / s
		q.Jmag = (z.Y + y.Z) / s
		q.Kmag = 0.25 * s
	}
	return Normalize(q)
}

// AxesFromQuat recovers the x, y, and z axes of the rotation matrix represented by q.
func AxesFromQuat(q quat.Number) (x, y, z r3.Vector) {
	x = QuatRotateVector(q, r3.Vector{X: 1})
	y = QuatRotateVector(q, r3.Vector{Y: 1})
	z = QuatRotateVector(q, r3.Vector{Z: 1})
	return x, y, z
}

// NewQuatFromAxisAngle returns the quaternion representing a rotation of theta radians about the
// given axis. The axis need not be unit length.
func NewQuatFromAxisAngle(axis r3.Vector, theta float64) quat.Number {
	if axis.Norm() == 0 {
		return quat.Number{Real: 1}
	}
	axis = axis.Normalize()
	sin := math.Sin(theta / 2)
	return quat.Number{
		Real: math.Cos(theta / 2),
		Imag: axis.X * sin,
		Jmag: axis.Y * sin,
		Kmag: axis.Z * sin,
	}
}

// OrientationBetween returns the quaternion rotating o1 to o2.
func OrientationBetween(o1, o2 quat.Number) quat.Number {
	return Normalize(quat.Mul(o2, quat.Conj(o1)))
}

// QuatToRotationVector converts a unit quaternion to a rotation vector: a 3-vector along the
// rotation axis whose norm is the rotation angle in radians.
func QuatToRotationVector(q quat.Number) r3.Vector {
	if q.Real < 0 {
		// q and -q represent the same rotation; use the short way around
		q = quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
	}
	axisNorm := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if axisNorm < 1e-12 {
		return r3.Vector{}
	}
	angle := 2 * math.Atan2(axisNorm, q.Real)
	return r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}.Mul(angle / axisNorm)
}

// QuaternionAlmostEqual checks whether two quaternions represent the same rotation to within epsilon,
// accounting for the double cover of rotation space.
func QuaternionAlmostEqual(a, b quat.Number, epsilon float64) bool {
	prod := quat.Mul(quat.Conj(a), b)
	return 1-math.Abs(prod.Real) < epsilon
}
