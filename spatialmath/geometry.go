package spatialmath

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Geometry is a three-dimensional shape with a pose and a label, used for collision checking
// between named bodies. DistanceFrom reports the signed separation distance between two
// geometries; a negative value is the penetration depth.
type Geometry interface {
	Pose() Pose
	Label() string

	// Transform returns a copy of the geometry posed relative to the given pose.
	Transform(Pose) Geometry

	DistanceFrom(Geometry) (float64, error)

	json.Marshaler
}

func newCollisionTypeUnsupportedError(g1, g2 Geometry) error {
	return errors.Errorf("collision checking between %T and %T is not supported", g1, g2)
}

// sphere is a collision geometry that represents a sphere, it has a pose and a radius that fully define it.
type sphere struct {
	pose   Pose
	radius float64
	label  string
}

// NewSphere instantiates a new sphere Geometry.
func NewSphere(offset Pose, radius float64, label string) (Geometry, error) {
	if radius <= 0 {
		return nil, errors.New("sphere radius must be positive")
	}
	return &sphere{pose: offset, radius: radius, label: label}, nil
}

func (s *sphere) Pose() Pose {
	return s.pose
}

func (s *sphere) Label() string {
	return s.label
}

func (s *sphere) Transform(toPremultiply Pose) Geometry {
	return &sphere{pose: Compose(toPremultiply, s.pose), radius: s.radius, label: s.label}
}

func (s *sphere) DistanceFrom(g Geometry) (float64, error) {
	switch other := g.(type) {
	case *sphere:
		return sphereVsSphereDistance(s, other), nil
	case *capsule:
		return capsuleVsSphereDistance(other, s), nil
	default:
		return 0, newCollisionTypeUnsupportedError(s, g)
	}
}

func (s *sphere) MarshalJSON() ([]byte, error) {
	return json.Marshal(GeometryConfig{Type: "sphere", R: s.radius, Label: s.label, Center: NewPoseConfig(s.pose)})
}

// String returns a human readable string that represents the sphere.
func (s *sphere) String() string {
	return fmt.Sprintf("Type: Sphere, Radius: %.3f", s.radius)
}

// capsule is a collision geometry representing a capsule centered on its pose, whose central
// segment extends along the pose's local z-axis. Length is the tip-to-tip distance, so the
// internal segment length is length - 2*radius. Cylindrical bodies are represented as capsules
// for distance checking.
type capsule struct {
	pose   Pose
	radius float64
	length float64
	label  string

	// segment endpoints in world coordinates, precalculated at creation
	segA r3.Vector
	segB r3.Vector
}

// NewCapsule instantiates a new capsule Geometry.
func NewCapsule(offset Pose, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, errors.New("capsule radius and length must be positive")
	}
	if length <= radius*2 {
		return NewSphere(offset, radius, label)
	}
	return newCapsuleWithSegPoints(offset, radius, length, label), nil
}

func newCapsuleWithSegPoints(offset Pose, radius, length float64, label string) Geometry {
	half := length/2 - radius
	return &capsule{
		pose:   offset,
		radius: radius,
		length: length,
		label:  label,
		segA:   Compose(offset, NewPoseFromPoint(r3.Vector{Z: -half})).Point(),
		segB:   Compose(offset, NewPoseFromPoint(r3.Vector{Z: half})).Point(),
	}
}

func (c *capsule) Pose() Pose {
	return c.pose
}

func (c *capsule) Label() string {
	return c.label
}

func (c *capsule) Transform(toPremultiply Pose) Geometry {
	return newCapsuleWithSegPoints(Compose(toPremultiply, c.pose), c.radius, c.length, c.label)
}

func (c *capsule) DistanceFrom(g Geometry) (float64, error) {
	switch other := g.(type) {
	case *sphere:
		return capsuleVsSphereDistance(c, other), nil
	case *capsule:
		return capsuleVsCapsuleDistance(c, other), nil
	default:
		return 0, newCollisionTypeUnsupportedError(c, g)
	}
}

func (c *capsule) MarshalJSON() ([]byte, error) {
	return json.Marshal(GeometryConfig{Type: "capsule", R: c.radius, L: c.length, Label: c.label, Center: NewPoseConfig(c.pose)})
}

// String returns a human readable string that represents the capsule.
func (c *capsule) String() string {
	return fmt.Sprintf("Type: Capsule, Radius: %.3f, Length: %.3f", c.radius, c.length)
}

func sphereVsSphereDistance(a, b *sphere) float64 {
	return a.pose.Point().Sub(b.pose.Point()).Norm() - a.radius - b.radius
}

func capsuleVsSphereDistance(c *capsule, s *sphere) float64 {
	return DistToLineSegment(c.segA, c.segB, s.pose.Point()) - c.radius - s.radius
}

func capsuleVsCapsuleDistance(a, b *capsule) float64 {
	return SegmentDistanceToSegment(a.segA, a.segB, b.segA, b.segB) - a.radius - b.radius
}

// DistToLineSegment takes a line segment defined by pt1 and pt2, plus some query point, and returns
// the cartesian distance from the query point to the closest point on the line segment.
func DistToLineSegment(pt1, pt2, query r3.Vector) float64 {
	return ClosestPointSegmentPoint(pt1, pt2, query).Sub(query).Norm()
}

// ClosestPointSegmentPoint takes a line segment defined by pt1 and pt2, plus some query point, and
// returns the point on the segment closest to the query point.
func ClosestPointSegmentPoint(pt1, pt2, query r3.Vector) r3.Vector {
	ab := pt2.Sub(pt1)
	abLenSq := ab.Norm2()
	if abLenSq == 0 {
		return pt1
	}
	t := query.Sub(pt1).Dot(ab) / abLenSq
	if t <= 0 {
		return pt1
	} else if t >= 1 {
		return pt2
	}
	return pt1.Add(ab.Mul(t))
}

// SegmentDistanceToSegment returns the cartesian distance between the closest points on two line
// segments, (ap1, ap2) and (bp1, bp2).
func SegmentDistanceToSegment(ap1, ap2, bp1, bp2 r3.Vector) float64 {
	bestA, bestB := segmentClosestPoints(ap1, ap2, bp1, bp2)
	return bestA.Sub(bestB).Norm()
}

func segmentClosestPoints(ap1, ap2, bp1, bp2 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := ap2.Sub(ap1)
	d2 := bp2.Sub(bp1)
	r := ap1.Sub(bp1)

	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a == 0 && e == 0:
		return ap1, bp1
	case a == 0:
		t = clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e == 0 {
			s = clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clamp((b-c)/a, 0, 1)
			}
		}
	}
	return ap1.Add(d1.Mul(s)), bp1.Add(d2.Mul(t))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
