// Package main runs the cylinder-sanding demo pipeline: load the robot environment, attach the
// workpiece, generate a surface toolpath, assemble and solve the trajectory-optimization
// problem, and export (optionally execute) the resulting joint trajectory.
package main

import (
	"context"
	"flag"
	"math"
	"os"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/smith-doug/descartes-light/environment"
	"github.com/smith-doug/descartes-light/laddergraph"
	"github.com/smith-doug/descartes-light/referenceframe"
	"github.com/smith-doug/descartes-light/spatialmath"
	"github.com/smith-doug/descartes-light/toolpath"
	"github.com/smith-doug/descartes-light/trajectory"
	"github.com/smith-doug/descartes-light/trajopt"
)

var logger = golog.NewDevelopmentLogger("sander")

const (
	groupName = "my_robot"
	toolLink  = "sander_tcp"
	partName  = "part"

	partRadius = 0.2
	partLength = 1.0
)

// the center of the workpiece cylinder's bottom scan slice, in world coordinates
var partOrigin = r3.Vector{X: 1.0, Y: 0, Z: 0.5}

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	kinematicsFile := flag.String("kinematics", "cmd/sander/data/sander.json", "path to the robot kinematics JSON")
	controllerAddr := flag.String("controller", "", "trajectory controller TCP address; empty skips execution")
	seedMode := flag.String("seed", "stationary", "initial guess strategy: stationary or ladder")
	telemetryFile := flag.String("telemetry", "", "file to write telemetry JSON lines to; empty skips telemetry")
	flag.Parse()

	env, err := environment.Load(*kinematicsFile, logger)
	if err != nil {
		return err
	}

	partGeometry, err := spatialmath.NewCapsule(spatialmath.NewZeroPose(), partRadius, partLength, partName)
	if err != nil {
		return err
	}
	if err := env.AttachBody(&environment.Body{
		Name:      partName,
		Geometry:  partGeometry,
		Transform: spatialmath.NewPoseFromPoint(partOrigin),
	}); err != nil {
		return err
	}
	if err := env.AddManipulator(groupName, toolLink); err != nil {
		return err
	}
	group, err := env.Manipulator(groupName)
	if err != nil {
		return err
	}

	var publisher *trajectory.Publisher
	if *telemetryFile != "" {
		f, err := os.Create(*telemetryFile)
		if err != nil {
			return errors.Wrap(err, "error opening telemetry file")
		}
		defer f.Close()
		publisher = trajectory.NewPublisher(f, logger)
	}

	path, err := toolpath.Generate(toolpath.PathConfig{
		Radius:      partRadius,
		SliceHeight: 0.1,
		NumSlices:   5,
		AngleStep:   math.Pi / 12,
		Origin:      spatialmath.NewPoseFromPoint(partOrigin),
	})
	if err != nil {
		return err
	}
	logger.Infow("generated toolpath", "waypoints", len(path))
	if publisher != nil {
		publisher.PublishPoses(path)
	}

	prob, err := trajopt.NewProblem(env, groupName, toolLink, path, trajopt.DefaultTuning())
	if err != nil {
		return err
	}
	if *seedMode == "ladder" {
		if err := refineSeed(prob, group); err != nil {
			return err
		}
	} else if *seedMode != "stationary" {
		return errors.Errorf("unknown seed mode %q", *seedMode)
	}

	solver := trajopt.NewSolver(logger)
	result, err := solver.Solve(ctx, prob)
	if err != nil {
		return err
	}
	logger.Infow("optimization finished", "status", result.Status, "score", result.Score)

	traj, err := trajectory.Export(result.Trajectory, group.JointNames(), trajectory.DefaultTimeStep)
	if err != nil {
		return err
	}
	logger.Infow("exported trajectory", "id", traj.ID, "points", len(traj.Points), "duration", traj.Duration())

	if *controllerAddr != "" {
		executor := trajectory.NewClient(*controllerAddr, logger)
		if err := executor.ExecuteTrajectory(ctx, traj); err != nil {
			// execution is best effort; a dead controller should not fail the planning run
			logger.Errorw("trajectory execution failed", "error", err)
		}
	}

	if publisher != nil {
		publisher.PublishWorldState(env.Snapshot())
	}
	return nil
}

// refineSeed replaces the problem's stationary initial guess with the smoothest chain through a
// small ladder graph of candidate configurations per step: the current joint values plus a few
// fixed fractions of each joint's range.
func refineSeed(prob *trajopt.ProblemDescription, group *environment.Manipulator) error {
	limits := group.DoF()
	current := referenceframe.FloatsToInputs(group.CurrentJointValues())

	candidates := [][]referenceframe.Input{current}
	for _, fraction := range []float64{0.25, 0.5, 0.75} {
		sample := make([]referenceframe.Input, 0, len(limits))
		for _, limit := range limits {
			sample = append(sample, referenceframe.Input{Value: limit.Min + fraction*(limit.Max-limit.Min)})
		}
		candidates = append(candidates, sample)
	}

	g := laddergraph.NewLadderGraph(len(limits))
	for i := 0; i < prob.NSteps; i++ {
		if err := g.AddRungSamples(candidates); err != nil {
			return err
		}
	}
	if err := g.BuildEdges(laddergraph.EuclideanDistanceEdgeEvaluator{}); err != nil {
		return err
	}
	seedPath, cost, err := g.SolvePath()
	if err != nil {
		return err
	}
	logger.Infow("ladder seed refinement", "rungs", g.Size(), "vertices", g.NumVertices(), "cost", cost)

	for i, sample := range seedPath {
		prob.InitTraj.SetRow(i, referenceframe.InputsToFloats(sample))
	}
	return nil
}
