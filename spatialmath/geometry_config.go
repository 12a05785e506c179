package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// PoseConfig is the JSON representation of a pose: a translation and a unit quaternion.
// An all-zero quaternion is read as the identity so that configs may omit orientation.
type PoseConfig struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	QW float64 `json:"qw,omitempty"`
	QX float64 `json:"qx,omitempty"`
	QY float64 `json:"qy,omitempty"`
	QZ float64 `json:"qz,omitempty"`
}

// ParsePose converts the config into a Pose.
func (cfg PoseConfig) ParsePose() Pose {
	o := quat.Number{Real: cfg.QW, Imag: cfg.QX, Jmag: cfg.QY, Kmag: cfg.QZ}
	if o.Real == 0 && o.Imag == 0 && o.Jmag == 0 && o.Kmag == 0 {
		o = NewZeroOrientation()
	}
	return NewPose(r3.Vector{X: cfg.X, Y: cfg.Y, Z: cfg.Z}, Normalize(o))
}

// NewPoseConfig converts a Pose into its JSON representation.
func NewPoseConfig(p Pose) PoseConfig {
	pt, o := p.Point(), p.Orientation()
	return PoseConfig{X: pt.X, Y: pt.Y, Z: pt.Z, QW: o.Real, QX: o.Imag, QY: o.Jmag, QZ: o.Kmag}
}

// GeometryConfig specifies the format of geometries specified through JSON configuration files.
type GeometryConfig struct {
	Type string `json:"type"`

	// parameters used for defining a sphere or capsule
	R float64 `json:"r,omitempty"`
	L float64 `json:"l,omitempty"`

	// pose of the geometry relative to the frame it is attached to
	Center PoseConfig `json:"center,omitempty"`

	Label string `json:"label,omitempty"`
}

// ParseConfig converts a GeometryConfig into the Geometry it describes, offset by the given pose.
func (cfg *GeometryConfig) ParseConfig(offset Pose) (Geometry, error) {
	pose := Compose(offset, cfg.Center.ParsePose())
	switch cfg.Type {
	case "sphere":
		return NewSphere(pose, cfg.R, cfg.Label)
	case "capsule", "cylinder":
		// cylinders are approximated by their bounding capsules for distance checking
		return NewCapsule(pose, cfg.R, cfg.L, cfg.Label)
	default:
		return nil, errors.Errorf("geometry type %q unsupported", cfg.Type)
	}
}
