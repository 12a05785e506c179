// Package trajopt assembles constrained trajectory-optimization problems over a kinematic group
// and drives a nonlinear solver to produce joint-space motion honoring a sequence of target
// poses while minimizing velocity, acceleration, and collision costs.
package trajopt

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// CostKind discriminates the closed set of cost term variants.
type CostKind int

// The supported cost term kinds.
const (
	JointVelocityCost CostKind = iota
	JointAccelerationCost
	CollisionCost
)

func (k CostKind) String() string {
	switch k {
	case JointVelocityCost:
		return "joint_vel"
	case JointAccelerationCost:
		return "joint_acc"
	case CollisionCost:
		return "collision"
	default:
		return "unknown"
	}
}

// CostTerm is one term of the optimization objective. Coeffs applies to the velocity and
// acceleration kinds; FirstStep, LastStep, and Margins apply to the collision kind. Collision
// evaluation is discrete per step, with no continuous-time interpolated checking.
type CostTerm struct {
	Kind CostKind
	Name string

	// Coeffs holds one coefficient per joint.
	Coeffs []float64

	// FirstStep and LastStep bound the steps, inclusive, over which the term applies.
	FirstStep int
	LastStep  int

	// Margins holds the collision safety margins, including per-pair overrides.
	Margins *SafetyMarginData
}

// ConstraintTerm is a pose equality constraint: the named link must match the target position
// and orientation at the given trajectory step. A zero orientation weight leaves that rotational
// axis unconstrained.
type ConstraintTerm struct {
	Name string
	Link string
	Step int

	Position    r3.Vector
	Orientation quat.Number

	PosWeights [3]float64
	RotWeights [3]float64
}
