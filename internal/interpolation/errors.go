package interpolation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrResolution         = errors.New("failed to resolve reference")
	ErrUnknownNamespace   = errors.New("unknown namespace")
	ErrUndefinedReference = errors.New("undefined reference")
	ErrCircularReference  = errors.New("circular variable reference")
)

// ResolutionError reports a reference that cannot be resolved or a cycle
// among variables.
type ResolutionError struct {
	// Variable is the variable whose definition failed; empty for server values.
	Variable string
	// Reference is the offending reference as written.
	Reference string
	Namespace string
	Key       string
	// Chain lists the variables of a cycle, first name repeated at the end.
	Chain []string
	// Err is ErrUnknownNamespace, ErrUndefinedReference or ErrCircularReference.
	Err error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	if e.Variable != "" {
		fmt.Fprintf(&b, "variable '%s': ", e.Variable)
	}

	switch {
	case errors.Is(e.Err, ErrCircularReference):
		fmt.Fprintf(&b, "%v: %s", e.Err, strings.Join(e.Chain, " -> "))
	case errors.Is(e.Err, ErrUnknownNamespace):
		fmt.Fprintf(&b, "%v '%s' in %s", e.Err, e.Namespace, e.Reference)
	default:
		fmt.Fprintf(&b, "%v %s", e.Err, e.Reference)
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() []error {
	return []error{ErrResolution, e.Err}
}
