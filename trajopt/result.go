package trajopt

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Status is the terminal state of an optimization run.
type Status int

// The terminal states. NotConverged is not an error: the best available iterate is still
// returned and passed downstream, with a diagnostic surfaced to the caller.
const (
	NotConverged Status = iota
	Converged
)

func (s Status) String() string {
	if s == Converged {
		return "converged"
	}
	return "not converged"
}

// OptimizationResult is the outcome of a solver run: the terminal status, the solved step-by-joint
// trajectory matrix, and the final objective score.
type OptimizationResult struct {
	Status     Status
	Trajectory *mat.Dense
	Score      float64
}

var errBadInitialGuess = errors.New("initial guess does not match problem dimensions")
