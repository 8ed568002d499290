package pipeline

import "errors"

var (
	ErrStale        = errors.New("generated output is out of date")
	ErrStateMachine = errors.New("invalid run state")
)
