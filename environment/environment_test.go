package environment

import (
	"errors"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/smith-doug/descartes-light/referenceframe"
	"github.com/smith-doug/descartes-light/spatialmath"
)

func makeTestEnv(t *testing.T) *Environment {
	t.Helper()
	j1, err := referenceframe.NewRevoluteFrame("j1", r3.Vector{Z: 1}, referenceframe.Limit{Min: -math.Pi, Max: math.Pi})
	test.That(t, err, test.ShouldBeNil)
	linkGeom, err := spatialmath.NewCapsule(spatialmath.NewPoseFromPoint(r3.Vector{X: 0.5}), 0.05, 1, "l1")
	test.That(t, err, test.ShouldBeNil)
	l1, err := referenceframe.NewStaticFrameWithGeometry("l1", spatialmath.NewPoseFromPoint(r3.Vector{X: 1}), linkGeom)
	test.That(t, err, test.ShouldBeNil)
	tcp, err := referenceframe.NewStaticFrame("tcp", spatialmath.NewPoseFromPoint(r3.Vector{X: 0.1}))
	test.That(t, err, test.ShouldBeNil)

	env, err := New(referenceframe.NewSimpleModel("robot", []referenceframe.Frame{j1, l1, tcp}), golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return env
}

func TestManipulatorResolution(t *testing.T) {
	env := makeTestEnv(t)
	test.That(t, env.AddManipulator("my_robot", "tcp"), test.ShouldBeNil)

	group, err := env.Manipulator("my_robot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, group.Name(), test.ShouldEqual, "my_robot")
	test.That(t, group.JointNames(), test.ShouldResemble, []string{"j1"})
	test.That(t, group.DoF(), test.ShouldHaveLength, 1)

	_, err = env.Manipulator("nosuchgroup")
	test.That(t, err, test.ShouldNotBeNil)
	var resErr *ResolutionError
	test.That(t, errors.As(err, &resErr), test.ShouldBeTrue)

	// nonexistent tip link fails at registration
	err = env.AddManipulator("bad", "nosuchlink")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSetState(t *testing.T) {
	env := makeTestEnv(t)
	test.That(t, env.SetState([]string{"j1"}, []float64{0.5}), test.ShouldBeNil)
	test.That(t, env.CurrentJointValues(), test.ShouldResemble, []float64{0.5})

	// unknown joint
	test.That(t, env.SetState([]string{"j9"}, []float64{1}), test.ShouldNotBeNil)
	// mismatched lengths
	test.That(t, env.SetState([]string{"j1"}, []float64{1, 2}), test.ShouldNotBeNil)
}

func TestAttachBody(t *testing.T) {
	env := makeTestEnv(t)
	test.That(t, env.AddManipulator("my_robot", "tcp"), test.ShouldBeNil)
	group, err := env.Manipulator("my_robot")
	test.That(t, err, test.ShouldBeNil)

	part, err := spatialmath.NewCapsule(spatialmath.NewZeroPose(), 0.2, 1, "part")
	test.That(t, err, test.ShouldBeNil)
	err = env.AttachBody(&Body{Name: "part", Geometry: part, Transform: spatialmath.NewPoseFromPoint(r3.Vector{X: 1, Z: 0.5})})
	test.That(t, err, test.ShouldBeNil)

	// duplicate names are rejected
	err = env.AttachBody(&Body{Name: "part", Geometry: part})
	test.That(t, err, test.ShouldNotBeNil)

	entities, err := group.CollisionEntities(referenceframe.FloatsToInputs([]float64{0}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, entities, test.ShouldHaveLength, 2)
	test.That(t, entities["part"], test.ShouldNotBeNil)
	test.That(t, entities["l1"], test.ShouldNotBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(entities["part"].Pose().Point(), r3.Vector{X: 1, Z: 0.5}, 1e-9), test.ShouldBeTrue)
}

func TestSnapshot(t *testing.T) {
	env := makeTestEnv(t)
	part, err := spatialmath.NewSphere(spatialmath.NewZeroPose(), 0.2, "part")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, env.AttachBody(&Body{Name: "part", Geometry: part, Transform: spatialmath.NewPoseFromPoint(r3.Vector{X: 1})}), test.ShouldBeNil)
	test.That(t, env.SetState([]string{"j1"}, []float64{0.25}), test.ShouldBeNil)

	state := env.Snapshot()
	test.That(t, state.JointNames, test.ShouldResemble, []string{"j1"})
	test.That(t, state.JointValues, test.ShouldResemble, []float64{0.25})
	test.That(t, state.Bodies, test.ShouldHaveLength, 1)
	test.That(t, state.Bodies[0].Name, test.ShouldEqual, "part")
	test.That(t, state.Bodies[0].Pose.X, test.ShouldAlmostEqual, 1)
}
