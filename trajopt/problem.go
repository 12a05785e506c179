package trajopt

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/smith-doug/descartes-light/environment"
	"github.com/smith-doug/descartes-light/spatialmath"
)

// Tuning holds the numeric design constants of the problem formulation.
type Tuning struct {
	JointVelocityCoeff     float64
	JointAccelerationCoeff float64

	CollisionMargin float64
	CollisionWeight float64

	// Named body-pair margin overrides. The tool disk is allowed controlled interpenetration
	// with the workpiece; the tool shaft may touch it but not penetrate.
	DiskBody        string
	ShaftBody       string
	WorkpieceBody   string
	DiskPairMargin  float64
	ShaftPairMargin float64

	PosWeights [3]float64
	RotWeights [3]float64
}

// DefaultTuning returns the tuning constants for the sanding application. The third rotation
// weight is zero: the sanding tool is rotationally symmetric about its working axis, so rotation
// about the tool's pointing axis is left unconstrained.
func DefaultTuning() Tuning {
	return Tuning{
		JointVelocityCoeff:     2.5,
		JointAccelerationCoeff: 5.0,
		CollisionMargin:        0.025,
		CollisionWeight:        20,
		DiskBody:               "sander_disk",
		ShaftBody:              "sander_shaft",
		WorkpieceBody:          "part",
		DiskPairMargin:         -0.01,
		ShaftPairMargin:        0.0,
		PosWeights:             [3]float64{10, 10, 10},
		RotWeights:             [3]float64{10, 10, 0},
	}
}

// ProblemDescription is a complete trajectory-optimization problem: step count, the kinematic
// group to solve, an initial guess, and the ordered cost and constraint terms. It is immutable
// once handed to a solver.
type ProblemDescription struct {
	NSteps     int
	Group      *environment.Manipulator
	StartFixed bool

	// InitTraj is the initial guess, one joint vector per step.
	InitTraj *mat.Dense

	Costs       []CostTerm
	Constraints []ConstraintTerm
}

// NewProblem builds a ProblemDescription that drives the named group's tool link through the
// given geometric path. The initial guess replicates the environment's current joint values
// across every step, a stationary seed that is feasible and collision consistent without
// requiring a precomputed trajectory. Fails with a ResolutionError if the group or tool link
// cannot be bound; no partial description is ever returned.
func NewProblem(
	env *environment.Environment,
	groupName, toolLink string,
	path []spatialmath.Pose,
	tuning Tuning,
) (*ProblemDescription, error) {
	if len(path) == 0 {
		return nil, errors.New("cannot build a problem from an empty toolpath")
	}

	group, err := env.Manipulator(groupName)
	if err != nil {
		return nil, err
	}
	if !group.HasLink(toolLink) {
		return nil, environment.NewLinkResolutionError(toolLink)
	}

	nSteps := len(path)
	dof := len(group.DoF())

	// stationary seed
	current := group.CurrentJointValues()
	initTraj := mat.NewDense(nSteps, dof, nil)
	for i := 0; i < nSteps; i++ {
		initTraj.SetRow(i, current)
	}

	margins := NewSafetyMarginData(tuning.CollisionMargin, tuning.CollisionWeight)
	margins.SetPairData(tuning.DiskBody, tuning.WorkpieceBody, tuning.DiskPairMargin, tuning.CollisionWeight)
	margins.SetPairData(tuning.ShaftBody, tuning.WorkpieceBody, tuning.ShaftPairMargin, tuning.CollisionWeight)

	prob := &ProblemDescription{
		NSteps:     nSteps,
		Group:      group,
		StartFixed: false,
		InitTraj:   initTraj,
		Costs: []CostTerm{
			{Kind: JointVelocityCost, Name: "joint_vel", Coeffs: uniformCoeffs(dof, tuning.JointVelocityCoeff)},
			{Kind: JointAccelerationCost, Name: "joint_acc", Coeffs: uniformCoeffs(dof, tuning.JointAccelerationCoeff)},
			{Kind: CollisionCost, Name: "collision", FirstStep: 0, LastStep: nSteps - 1, Margins: margins},
		},
	}

	for i, pose := range path {
		prob.Constraints = append(prob.Constraints, ConstraintTerm{
			Name:        fmt.Sprintf("waypoint_cart_%d", i),
			Link:        toolLink,
			Step:        i,
			Position:    pose.Point(),
			Orientation: pose.Orientation(),
			PosWeights:  tuning.PosWeights,
			RotWeights:  tuning.RotWeights,
		})
	}
	return prob, nil
}

func uniformCoeffs(dof int, value float64) []float64 {
	coeffs := make([]float64, dof)
	for i := range coeffs {
		coeffs[i] = value
	}
	return coeffs
}
