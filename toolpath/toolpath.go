// Package toolpath generates sequences of oriented target poses covering the lateral surface of
// a cylindrical workpiece, for a tool that must point into the surface while traveling
// tangentially around it.
package toolpath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/smith-doug/descartes-light/spatialmath"
)

// PathConfig holds the geometric parameters of a cylinder scan.
type PathConfig struct {
	// Radius of the cylinder.
	Radius float64
	// SliceHeight is the distance between successive slices along the cylinder axis.
	SliceHeight float64
	// NumSlices is the number of slices to scan.
	NumSlices int
	// AngleStep is the angular distance between samples around a slice, in radians.
	AngleStep float64
	// Origin is the pose of the center of the cylinder's bottom slice. The cylinder axis is the
	// origin's local z-axis.
	Origin spatialmath.Pose
}

// SamplesPerRevolution returns the fixed number of angular samples taken around each slice.
// The scan covers [0, 2pi) at AngleStep increments; the 0 and 2pi samples coincide and are not
// duplicated.
func (cfg *PathConfig) SamplesPerRevolution() int {
	return int(math.Ceil(2 * math.Pi / cfg.AngleStep))
}

func (cfg *PathConfig) validate() error {
	if cfg.Radius <= 0 {
		return errors.New("cylinder radius must be positive")
	}
	if cfg.NumSlices < 1 {
		return errors.New("need at least one slice")
	}
	if cfg.AngleStep <= 0 || cfg.AngleStep > 2*math.Pi {
		return errors.New("angle step must be in (0, 2pi]")
	}
	if cfg.Origin == nil {
		return errors.New("origin pose is required")
	}
	return nil
}

// Generate produces the toolpath over the cylinder surface in slice-by-slice, angle-by-angle scan
// order. Each pose sits on the surface with its z-axis pointing inward at the cylinder axis, its
// y-axis along the tangential direction of travel, and its x-axis completing a right-handed
// basis. The result has length NumSlices * SamplesPerRevolution and is deterministic for fixed
// inputs.
func Generate(cfg PathConfig) ([]spatialmath.Pose, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	samples := cfg.SamplesPerRevolution()
	originQuat := cfg.Origin.Orientation()
	path := make([]spatialmath.Pose, 0, cfg.NumSlices*samples)

	for i := 0; i < cfg.NumSlices; i++ {
		sliceCenter := spatialmath.Compose(cfg.Origin, spatialmath.NewPoseFromPoint(r3.Vector{Z: float64(i) * cfg.SliceHeight}))
		for k := 0; k < samples; k++ {
			r := float64(k) * cfg.AngleStep
			offset := r3.Vector{X: cfg.Radius * math.Cos(r), Y: cfg.Radius * math.Sin(r)}
			point := spatialmath.Compose(sliceCenter, spatialmath.NewPoseFromPoint(offset)).Point()

			// tool points inward, from the surface toward the cylinder axis
			zAxis := sliceCenter.Point().Sub(point).Normalize()
			// tangential direction of travel around the circle, in the slice's local frame
			yAxis := spatialmath.QuatRotateVector(originQuat, r3.Vector{X: -math.Sin(r), Y: math.Cos(r)}).Normalize()
			xAxis := yAxis.Cross(zAxis).Normalize()

			path = append(path, spatialmath.NewPose(point, spatialmath.QuatFromAxes(xAxis, yAxis, zAxis)))
		}
	}
	return path, nil
}
