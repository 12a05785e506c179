//go:build windows || no_cgo

package trajopt

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// Solver mimics the type in the cgo compiled code.
type Solver struct{}

// NewSolver returns a Solver that cannot solve anything; nlopt is not supported on this build.
func NewSolver(logger golog.Logger) *Solver {
	return &Solver{}
}

// Solve refuses to solve problems without cgo.
func (s *Solver) Solve(ctx context.Context, prob *ProblemDescription) (*OptimizationResult, error) {
	return nil, errors.New("trajectory optimization is not supported on this build")
}
