package referenceframe

import (
	"fmt"

	"github.com/pkg/errors"
)

// OOBErrString is a string that all out-of-bounds errors contain, so that they can be checked
// for distinct from other Transform errors.
const OOBErrString = "input out of bounds"

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// NewIncorrectInputLengthError returns an error describing an input list whose length does not
// match the frame's degrees of freedom.
func NewIncorrectInputLengthError(actual, expected int) error {
	return fmt.Errorf("number of inputs does not match frame DoF, expected %d but got %d", expected, actual)
}

func newOOBError(joint string, value float64, limit Limit) error {
	return errors.Errorf("%s: joint %s value %.5f outside of limits [%.5f, %.5f]", OOBErrString, joint, value, limit.Min, limit.Max)
}

// NewFrameNotFoundError returns an error for when a named frame is missing from a model.
func NewFrameNotFoundError(name string) error {
	return errors.Errorf("no frame with name %q in model", name)
}
