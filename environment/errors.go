package environment

import "fmt"

// ConfigurationError indicates the world model could not be constructed from its inputs. They are
// fatal to a planning run and must abort it.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("environment configuration error: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("environment configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ResolutionError indicates a named kinematic group or link could not be bound against the world
// model. Like configuration errors these are fatal; no partial problem may be built from an
// unresolved group.
type ResolutionError struct {
	Kind string
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %s %q in environment", e.Kind, e.Name)
}

// NewGroupResolutionError returns a ResolutionError for a missing kinematic group.
func NewGroupResolutionError(name string) error {
	return &ResolutionError{Kind: "kinematic group", Name: name}
}

// NewLinkResolutionError returns a ResolutionError for a missing link.
func NewLinkResolutionError(name string) error {
	return &ResolutionError{Kind: "link", Name: name}
}
