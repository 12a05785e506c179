package trajopt

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/smith-doug/descartes-light/referenceframe"
	"github.com/smith-doug/descartes-light/spatialmath"
)

// penaltyScale is applied to the pose constraint terms when they are folded into the engine's
// objective, so that constraint violation dominates the smoothness costs.
const penaltyScale = 100.

func (prob *ProblemDescription) dof() int {
	return len(prob.Group.DoF())
}

// stepInputs views one step's joint vector out of the flattened variable vector.
func (prob *ProblemDescription) stepInputs(x []float64, step int) []referenceframe.Input {
	dof := prob.dof()
	return referenceframe.FloatsToInputs(x[step*dof : (step+1)*dof])
}

// evaluate computes the full objective for a flattened trajectory: smoothness and collision
// costs plus the weighted pose constraint penalties. Lower is better; a feasible trajectory
// meeting all pose targets scores near the pure smoothness cost.
func (prob *ProblemDescription) evaluate(x []float64) (float64, error) {
	total := 0.
	for _, cost := range prob.Costs {
		switch cost.Kind {
		case JointVelocityCost:
			total += prob.velocityCost(x, cost.Coeffs)
		case JointAccelerationCost:
			total += prob.accelerationCost(x, cost.Coeffs)
		case CollisionCost:
			collision, err := prob.collisionCost(x, cost)
			if err != nil {
				return 0, err
			}
			total += collision
		default:
			return 0, errors.Errorf("unknown cost kind %d", cost.Kind)
		}
	}

	for i := range prob.Constraints {
		penalty, err := prob.constraintPenalty(x, &prob.Constraints[i])
		if err != nil {
			return 0, err
		}
		total += penaltyScale * penalty
	}
	return total, nil
}

func (prob *ProblemDescription) velocityCost(x, coeffs []float64) float64 {
	dof := prob.dof()
	cost := 0.
	for t := 1; t < prob.NSteps; t++ {
		for j := 0; j < dof; j++ {
			d := x[t*dof+j] - x[(t-1)*dof+j]
			cost += coeffs[j] * d * d
		}
	}
	return cost
}

func (prob *ProblemDescription) accelerationCost(x, coeffs []float64) float64 {
	dof := prob.dof()
	cost := 0.
	for t := 1; t < prob.NSteps-1; t++ {
		for j := 0; j < dof; j++ {
			dd := x[(t+1)*dof+j] - 2*x[t*dof+j] + x[(t-1)*dof+j]
			cost += coeffs[j] * dd * dd
		}
	}
	return cost
}

// collisionCost sums hinge losses over every unordered pair of collision bodies at every step in
// the term's range. Each pair's margin and weight come from the term's SafetyMarginData, so the
// named overrides apply to exactly their pair and no other.
func (prob *ProblemDescription) collisionCost(x []float64, cost CostTerm) (float64, error) {
	total := 0.
	for t := cost.FirstStep; t <= cost.LastStep; t++ {
		entities, err := prob.Group.CollisionEntities(prob.stepInputs(x, t))
		if err != nil {
			return 0, err
		}
		names := make([]string, 0, len(entities))
		for name := range entities {
			names = append(names, name)
		}
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				data := cost.Margins.PairData(names[i], names[j])
				dist, err := entities[names[i]].DistanceFrom(entities[names[j]])
				if err != nil {
					return 0, err
				}
				if dist < data.Margin {
					total += data.Weight * (data.Margin - dist)
				}
			}
		}
	}
	return total, nil
}

// constraintPenalty scores one pose equality constraint: per-axis weighted squared position
// error plus per-axis weighted squared rotation error. The rotation error is expressed as a
// rotation vector in the target frame's local axes, so a zero weight on the third axis frees
// rotation about the tool's own pointing axis.
func (prob *ProblemDescription) constraintPenalty(x []float64, ct *ConstraintTerm) (float64, error) {
	pose, err := prob.Group.LinkTransform(prob.stepInputs(x, ct.Step), ct.Link)
	if err != nil {
		return 0, err
	}

	penalty := 0.
	posErr := pose.Point().Sub(ct.Position)
	for i, e := range []float64{posErr.X, posErr.Y, posErr.Z} {
		penalty += ct.PosWeights[i] * e * e
	}

	errQuat := quat.Mul(quat.Conj(ct.Orientation), pose.Orientation())
	rotErr := spatialmath.QuatToRotationVector(spatialmath.Normalize(errQuat))
	for i, e := range []float64{rotErr.X, rotErr.Y, rotErr.Z} {
		penalty += ct.RotWeights[i] * e * e
	}
	return penalty, nil
}
