package referenceframe

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/smith-doug/descartes-light/spatialmath"
)

// LinkConfig is how a link is represented in a kinematics JSON file.
type LinkConfig struct {
	ID          string                      `json:"id"`
	Parent      string                      `json:"parent"`
	Translation spatialmath.PoseConfig      `json:"translation"`
	Geometry    *spatialmath.GeometryConfig `json:"geometry,omitempty"`
}

// JointConfig is how a joint is represented in a kinematics JSON file.
type JointConfig struct {
	ID     string     `json:"id"`
	Parent string     `json:"parent"`
	Type   string     `json:"type"`
	Axis   AxisConfig `json:"axis"`
	Min    float64    `json:"min"`
	Max    float64    `json:"max"`
}

// AxisConfig represents a joint axis in a kinematics JSON file.
type AxisConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ModelConfig represents all supported fields in a kinematics JSON file.
type ModelConfig struct {
	Name   string        `json:"name"`
	Links  []LinkConfig  `json:"links,omitempty"`
	Joints []JointConfig `json:"joints,omitempty"`
}

// UnmarshalModelJSON will parse the given JSON data into a kinematics model. modelName sets the
// name of the model, will use the name from the JSON if string is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*SimpleModel, error) {
	// empty data probably means that the robot component has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}
	var cfg ModelConfig
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return cfg.ParseConfig(modelName)
}

// ParseModelJSONFile will read a given file and parse the contained kinematics JSON into a model.
func ParseModelJSONFile(filename, modelName string) (*SimpleModel, error) {
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName)
}

// ParseConfig converts the ModelConfig struct into a full SimpleModel with the name modelName.
// Links and joints must form a single serial chain rooted at the world frame.
func (cfg *ModelConfig) ParseConfig(modelName string) (*SimpleModel, error) {
	if modelName == "" {
		modelName = cfg.Name
	}

	transforms := map[string]Frame{}
	parentMap := map[string]string{}

	for _, link := range cfg.Links {
		if link.ID == World {
			return nil, errors.Errorf("link %q is a reserved word and cannot be used", World)
		}
		if _, ok := transforms[link.ID]; ok {
			return nil, errors.Errorf("duplicate frame name %q", link.ID)
		}
		var geometry spatialmath.Geometry
		if link.Geometry != nil {
			parsed, err := link.Geometry.ParseConfig(spatialmath.NewZeroPose())
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse geometry for link %q", link.ID)
			}
			geometry = parsed
		}
		frame, err := NewStaticFrameWithGeometry(link.ID, link.Translation.ParsePose(), geometry)
		if err != nil {
			return nil, err
		}
		transforms[link.ID] = frame
		parentMap[link.ID] = link.Parent
	}

	for _, joint := range cfg.Joints {
		if joint.ID == World {
			return nil, errors.Errorf("joint %q is a reserved word and cannot be used", World)
		}
		if _, ok := transforms[joint.ID]; ok {
			return nil, errors.Errorf("duplicate frame name %q", joint.ID)
		}
		if joint.Type != "revolute" {
			return nil, errors.Errorf("unsupported joint type %q, only revolute is supported", joint.Type)
		}
		frame, err := NewRevoluteFrame(joint.ID, r3.Vector{X: joint.Axis.X, Y: joint.Axis.Y, Z: joint.Axis.Z}, Limit{joint.Min, joint.Max})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse joint %q", joint.ID)
		}
		transforms[joint.ID] = frame
		parentMap[joint.ID] = joint.Parent
	}

	ordered, err := sortTransforms(transforms, parentMap)
	if err != nil {
		return nil, err
	}
	return NewSimpleModel(modelName, ordered), nil
}

// sortTransforms orders the frames into a single chain from the world frame out to the frame no
// other frame names as its parent.
func sortTransforms(transforms map[string]Frame, parentMap map[string]string) ([]Frame, error) {
	children := map[string]string{}
	for id, parent := range parentMap {
		if _, ok := children[parent]; ok {
			return nil, errors.Errorf("frame %q has multiple children, only serial chains are supported", parent)
		}
		if parent != World {
			if _, ok := transforms[parent]; !ok {
				return nil, errors.Errorf("frame %q has unknown parent %q", id, parent)
			}
		}
		children[parent] = id
	}

	ordered := make([]Frame, 0, len(transforms))
	next, ok := children[World]
	if !ok {
		return nil, errors.Errorf("no frame with %q as its parent", World)
	}
	for {
		ordered = append(ordered, transforms[next])
		next, ok = children[next]
		if !ok {
			break
		}
	}
	if len(ordered) != len(transforms) {
		return nil, errors.New("kinematic chain is disconnected")
	}
	return ordered, nil
}
