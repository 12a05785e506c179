package environment

import (
	"github.com/edaniels/golog"

	"github.com/smith-doug/descartes-light/referenceframe"
)

// Load reads a kinematics JSON file and builds an Environment around the model it describes.
// Any failure to read or parse the model is a ConfigurationError.
func Load(kinematicsFile string, logger golog.Logger) (*Environment, error) {
	model, err := referenceframe.ParseModelJSONFile(kinematicsFile, "")
	if err != nil {
		return nil, &ConfigurationError{Reason: "failed to load robot model", Err: err}
	}
	return New(model, logger)
}
