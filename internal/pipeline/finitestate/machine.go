// Package finitestate tracks the lifecycle of a generation run.
package finitestate

import (
	"log/slog"

	"github.com/robbyt/go-fsm"
)

// Run states
const (
	StateCreated   = "created"   // run constructed, nothing read yet
	StateLoaded    = "loaded"    // sources parsed and decoded
	StateValidated = "validated" // input passed schema validation
	StateResolved  = "resolved"  // every reference substituted
	StateVerified  = "verified"  // output passed schema validation
	StateWriting   = "writing"   // output is being written
	StateWritten   = "written"   // output written (terminal)
	StateChecked   = "checked"   // existing output matched (terminal)
	StateFailed    = "failed"    // any error (terminal)
)

// Transitions defines the valid state transitions of a run. Writing is only
// reachable once resolution, and any requested validation, has succeeded.
var Transitions = map[string][]string{
	StateCreated:   {StateLoaded, StateFailed},
	StateLoaded:    {StateValidated, StateResolved, StateFailed},
	StateValidated: {StateResolved, StateFailed},
	StateResolved:  {StateVerified, StateWriting, StateChecked, StateFailed},
	StateVerified:  {StateWriting, StateChecked, StateFailed},
	StateWriting:   {StateWritten, StateFailed},
	StateWritten:   {},
	StateChecked:   {},
	StateFailed:    {},
}

// Machine is the subset of the state machine a run uses.
type Machine interface {
	Transition(state string) error
	GetState() string
}

// New creates a run state machine in StateCreated.
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StateCreated, Transitions)
}

// IsTerminal reports whether no transition leaves state.
func IsTerminal(state string) bool {
	next, ok := Transitions[state]
	return ok && len(next) == 0
}
