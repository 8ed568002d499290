package validation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSchema = errors.New("schema validation failed")

// Violation kinds
var (
	ErrRequired           = errors.New("required")
	ErrEmpty              = errors.New("must not be empty")
	ErrNotMapping         = errors.New("must be a mapping")
	ErrNotSequence        = errors.New("must be a sequence")
	ErrNotString          = errors.New("must be a string")
	ErrNotScalar          = errors.New("must be a scalar")
	ErrInvalidVersion     = errors.New("invalid version")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Violation is one schema rule broken at Path.
type Violation struct {
	Path string
	Err  error
}

func (v Violation) Error() string {
	if v.Path == "" {
		return v.Err.Error()
	}
	return v.Path + ": " + v.Err.Error()
}

// SchemaError lists every violation found in one document, sorted by path.
type SchemaError struct {
	Document   string
	Violations []Violation
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %v: %d violation(s)", e.Document, ErrSchema, len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v.Error())
	}
	return b.String()
}

// Unwrap exposes ErrSchema and the error of every violation.
func (e *SchemaError) Unwrap() []error {
	errz := make([]error, 0, len(e.Violations)+1)
	errz = append(errz, ErrSchema)
	for _, v := range e.Violations {
		errz = append(errz, v.Err)
	}
	return errz
}
