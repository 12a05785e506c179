// Package trajectory converts solved joint matrices into time-stamped joint trajectories and
// streams them to an execution controller.
package trajectory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultTimeStep is the uniform spacing between trajectory points. Spacing is index based, not
// derived from achievable joint velocities; this is a known limitation of the exporter.
const DefaultTimeStep = time.Second

// TrajectoryPoint is one joint configuration with its time offset from trajectory start.
type TrajectoryPoint struct {
	Positions     []float64
	TimeFromStart time.Duration
}

// JointTrajectory is an ordered, time-stamped joint trajectory suitable for execution. Time
// offsets are monotonically non-decreasing from zero.
type JointTrajectory struct {
	ID         uuid.UUID
	JointNames []string
	Points     []TrajectoryPoint
}

// Duration returns the time offset of the final point, or zero for an empty trajectory.
func (jt *JointTrajectory) Duration() time.Duration {
	if len(jt.Points) == 0 {
		return 0
	}
	return jt.Points[len(jt.Points)-1].TimeFromStart
}

// Export converts a solved step-by-joint matrix into a JointTrajectory, one point per row, with
// time offsets at the fixed timeStep spacing. The output always has as many points as the matrix
// has rows; a non-converged solve exports the same way a converged one does.
func Export(solved mat.Matrix, jointNames []string, timeStep time.Duration) (*JointTrajectory, error) {
	rows, cols := solved.Dims()
	if cols != len(jointNames) {
		return nil, errors.Errorf("joint matrix has %d columns but %d joint names were given", cols, len(jointNames))
	}
	if timeStep <= 0 {
		return nil, errors.New("time step must be positive")
	}

	out := &JointTrajectory{
		ID:         uuid.New(),
		JointNames: jointNames,
		Points:     make([]TrajectoryPoint, 0, rows),
	}
	for i := 0; i < rows; i++ {
		positions := make([]float64, cols)
		for j := 0; j < cols; j++ {
			positions[j] = solved.At(i, j)
		}
		out.Points = append(out.Points, TrajectoryPoint{
			Positions:     positions,
			TimeFromStart: time.Duration(i) * timeStep,
		})
	}
	return out, nil
}
