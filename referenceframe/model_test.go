package referenceframe

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/smith-doug/descartes-light/spatialmath"
)

// a two link planar arm: revolute joint at the origin about z, a 1m link along x, another
// revolute joint, another 1m link, then a tool point.
func make2LinkArm(t *testing.T) *SimpleModel {
	t.Helper()
	j1, err := NewRevoluteFrame("j1", r3.Vector{Z: 1}, Limit{-math.Pi, math.Pi})
	test.That(t, err, test.ShouldBeNil)
	l1, err := NewStaticFrame("l1", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, err, test.ShouldBeNil)
	j2, err := NewRevoluteFrame("j2", r3.Vector{Z: 1}, Limit{-math.Pi, math.Pi})
	test.That(t, err, test.ShouldBeNil)
	l2, err := NewStaticFrame("l2", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, err, test.ShouldBeNil)
	return NewSimpleModel("arm", []Frame{j1, l1, j2, l2})
}

func TestModelTransform(t *testing.T) {
	m := make2LinkArm(t)
	test.That(t, m.DoF(), test.ShouldHaveLength, 2)
	test.That(t, m.JointNames(), test.ShouldResemble, []string{"j1", "j2"})

	// stretched out along x
	pose, err := m.Transform(FloatsToInputs([]float64{0, 0}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(pose.Point(), r3.Vector{X: 2}, 1e-9), test.ShouldBeTrue)

	// elbow bent 90 degrees
	pose, err = m.Transform(FloatsToInputs([]float64{0, math.Pi / 2}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(pose.Point(), r3.Vector{X: 1, Y: 1}, 1e-9), test.ShouldBeTrue)

	// whole arm rotated 90 degrees
	pose, err = m.Transform(FloatsToInputs([]float64{math.Pi / 2, 0}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(pose.Point(), r3.Vector{Y: 2}, 1e-9), test.ShouldBeTrue)
}

func TestLinkTransform(t *testing.T) {
	m := make2LinkArm(t)
	pose, err := m.LinkTransform(FloatsToInputs([]float64{0, math.Pi / 2}), "l1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(pose.Point(), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)

	_, err = m.LinkTransform(FloatsToInputs([]float64{0, 0}), "nosuchlink")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTransformOOB(t *testing.T) {
	m := make2LinkArm(t)
	_, err := m.Transform(FloatsToInputs([]float64{2 * math.Pi, 0}))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, OOBErrString)
}

func TestModelGeometries(t *testing.T) {
	geometry, err := spatialmath.NewSphere(spatialmath.NewZeroPose(), 0.1, "l1")
	test.That(t, err, test.ShouldBeNil)
	j1, err := NewRevoluteFrame("j1", r3.Vector{Z: 1}, Limit{-math.Pi, math.Pi})
	test.That(t, err, test.ShouldBeNil)
	l1, err := NewStaticFrameWithGeometry("l1", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}), geometry)
	test.That(t, err, test.ShouldBeNil)
	m := NewSimpleModel("arm", []Frame{j1, l1})

	geometries, err := m.Geometries(FloatsToInputs([]float64{math.Pi / 2}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, geometries, test.ShouldHaveLength, 1)
	test.That(t, spatialmath.R3VectorAlmostEqual(geometries["l1"].Pose().Point(), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestParseModelJSON(t *testing.T) {
	jsonData := []byte(`{
		"name": "testarm",
		"links": [
			{"id": "base", "parent": "world", "translation": {"x": 0, "y": 0, "z": 0.1}},
			{"id": "upper", "parent": "j1", "translation": {"x": 0, "y": 0, "z": 1},
				"geometry": {"type": "capsule", "r": 0.05, "l": 1, "center": {"z": -0.5}}},
			{"id": "tcp", "parent": "j2", "translation": {"x": 0.2, "y": 0, "z": 0}}
		],
		"joints": [
			{"id": "j1", "parent": "base", "type": "revolute", "axis": {"y": 1}, "min": -3.14, "max": 3.14},
			{"id": "j2", "parent": "upper", "type": "revolute", "axis": {"z": 1}, "min": -3.14, "max": 3.14}
		]
	}`)
	m, err := UnmarshalModelJSON(jsonData, "")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Name(), test.ShouldEqual, "testarm")
	test.That(t, m.DoF(), test.ShouldHaveLength, 2)
	test.That(t, m.FrameNames(), test.ShouldResemble, []string{"base", "j1", "upper", "j2", "tcp"})

	pose, err := m.Transform(FloatsToInputs([]float64{0, 0}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(pose.Point(), r3.Vector{X: 0.2, Z: 1.1}, 1e-9), test.ShouldBeTrue)
}

func TestParseModelJSONErrors(t *testing.T) {
	_, err := UnmarshalModelJSON([]byte{}, "")
	test.That(t, err, test.ShouldBeError, ErrNoModelInformation)

	_, err = UnmarshalModelJSON([]byte(`{"name": "x", "links": [{"id": "a", "parent": "b", "translation": {}}]}`), "")
	test.That(t, err, test.ShouldNotBeNil)

	// branching chains are rejected
	_, err = UnmarshalModelJSON([]byte(`{
		"name": "x",
		"links": [
			{"id": "a", "parent": "world", "translation": {}},
			{"id": "b", "parent": "world", "translation": {}}
		]
	}`), "")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInterpolateInputs(t *testing.T) {
	from := FloatsToInputs([]float64{0, 4})
	to := FloatsToInputs([]float64{2, 8})
	test.That(t, InputsToFloats(InterpolateInputs(from, to, 0.5)), test.ShouldResemble, []float64{1, 6})
}
