//go:build !windows && !no_cgo

package trajopt

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"github.com/go-nlopt/nlopt"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/mat"
)

const (
	defaultMaxEval = 5000
	defaultJump    = 1e-8
)

// Solver drives the external sequential-quadratic-programming engine against a
// ProblemDescription. The engine is consumed as a black box: it is handed the assembled
// objective and bounds and run to its own stopping criteria.
type Solver struct {
	logger  golog.Logger
	maxEval int
	jump    float64
	epsilon float64
}

// NewSolver returns a Solver with default stopping criteria.
func NewSolver(logger golog.Logger) *Solver {
	// Stop optimizing when iterations change by less than this much
	epsilon := math.Nextafter(1, 2) - 1
	return &Solver{logger: logger, maxEval: defaultMaxEval, jump: defaultJump, epsilon: epsilon}
}

type optimizeReturn struct {
	solution []float64
	score    float64
	err      error
}

// Solve runs the engine to completion against the problem and returns an OptimizationResult
// shaped [n_steps x joint-count]. The call blocks until the engine finishes or ctx is cancelled;
// there is no intermediate observation point. Exhausting the evaluation budget yields a
// NotConverged result carrying the engine's best iterate, not an error.
func (s *Solver) Solve(ctx context.Context, prob *ProblemDescription) (*OptimizationResult, error) {
	dof := prob.dof()
	rows, cols := prob.InitTraj.Dims()
	if rows != prob.NSteps || cols != dof || rows == 0 || cols == 0 {
		return nil, errBadInitialGuess
	}
	n := prob.NSteps * dof

	lower, upper := s.bounds(prob)
	opt, err := nlopt.NewNLopt(nlopt.LD_SLSQP, uint(n))
	if err != nil {
		return nil, errors.Wrap(err, "nlopt creation error")
	}
	defer opt.Destroy()

	evaluations := 0
	var evalErr error

	// x is the flattened trajectory. Gradient is, under the hood, an unsafe C structure that we
	// are meant to mutate in place.
	minFunc := func(x, gradient []float64) float64 {
		evaluations++
		dist, err := prob.evaluate(x)
		if err != nil {
			evalErr = multierr.Combine(evalErr, err, opt.ForceStop())
			return 0
		}
		for i := range gradient {
			// deep copy of the current trajectory so the engine's buffer is never perturbed
			xTest := append([]float64{}, x...)
			flip := false
			xTest[i] += s.jump
			if xTest[i] >= upper[i] {
				flip = true
				xTest[i] -= 2 * s.jump
			}
			dist2, err := prob.evaluate(xTest)
			if err != nil {
				evalErr = multierr.Combine(evalErr, err, opt.ForceStop())
				return 0
			}
			gradient[i] = (dist2 - dist) / s.jump
			if flip {
				gradient[i] *= -1
			}
		}
		return dist
	}

	err = multierr.Combine(
		opt.SetFtolAbs(s.epsilon),
		opt.SetFtolRel(s.epsilon),
		opt.SetXtolAbs1(s.epsilon),
		opt.SetXtolRel(s.epsilon),
		opt.SetLowerBounds(lower),
		opt.SetUpperBounds(upper),
		opt.SetMinObjective(minFunc),
		opt.SetMaxEval(s.maxEval),
	)
	if err != nil {
		return nil, errors.Wrap(err, "nlopt setup error")
	}

	seed := make([]float64, 0, n)
	for t := 0; t < prob.NSteps; t++ {
		seed = append(seed, prob.InitTraj.RawRowView(t)...)
	}

	solveChan := make(chan *optimizeReturn, 1)
	utils.PanicCapturingGo(func() {
		solution, score, optErr := opt.Optimize(seed)
		solveChan <- &optimizeReturn{solution, score, optErr}
	})

	var solved *optimizeReturn
	select {
	case <-ctx.Done():
		err = multierr.Combine(ctx.Err(), opt.ForceStop())
		<-solveChan
		return nil, err
	case solved = <-solveChan:
	}

	if evalErr != nil {
		return nil, evalErr
	}
	if solved.solution == nil {
		return nil, errors.Wrap(solved.err, "optimizer returned no iterate")
	}

	status := Converged
	if solved.err != nil || evaluations >= s.maxEval {
		status = NotConverged
	}
	if status == NotConverged {
		s.logger.Warnw("optimizer did not converge, returning best iterate",
			"evaluations", evaluations, "score", solved.score, "error", solved.err)
	} else {
		s.logger.Debugw("optimizer converged", "evaluations", evaluations, "score", solved.score)
	}

	return &OptimizationResult{
		Status:     status,
		Trajectory: mat.NewDense(prob.NSteps, dof, solved.solution),
		Score:      solved.score,
	}, nil
}

// bounds tiles the group's joint limits across every trajectory step.
func (s *Solver) bounds(prob *ProblemDescription) ([]float64, []float64) {
	limits := prob.Group.DoF()
	lower := make([]float64, 0, prob.NSteps*len(limits))
	upper := make([]float64, 0, prob.NSteps*len(limits))
	for t := 0; t < prob.NSteps; t++ {
		for _, limit := range limits {
			lower = append(lower, limit.Min)
			upper = append(upper, limit.Max)
		}
	}
	return lower, upper
}
