package config

import (
	"errors"
	"fmt"
)

var (
	ErrLoad           = errors.New("failed to load config")
	ErrMissingKey     = errors.New("missing required key")
	ErrInvalidShape   = errors.New("invalid structure")
	ErrEmptyDocument  = errors.New("document is empty")
	ErrNotMapping     = errors.New("document root is not a mapping")
	ErrNonScalarValue = errors.New("value must be a scalar")
)

// LoadError reports a source that is missing, unreadable, unparsable or shaped wrong.
type LoadError struct {
	Source string
	Err    error
}

// NewLoadError wraps err with the source it came from.
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", ErrLoad, e.Err)
	}
	return fmt.Sprintf("%s '%s': %v", ErrLoad, e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}
