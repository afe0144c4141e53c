package leadsheet

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to them so callers can use
// errors.Is.
var (
	// ErrPrecondition indicates invalid arguments or a request the current
	// document state cannot accept. The document is unchanged.
	ErrPrecondition = errors.New("leadsheet: precondition failed")

	// ErrVetoed indicates a listener refused the change during authorization.
	// The document is unchanged.
	ErrVetoed = errors.New("leadsheet: change vetoed")

	// ErrReentrantMutation indicates a mutation (or undo/redo) was requested
	// while another one was in progress on the same document, typically from
	// a listener callback.
	ErrReentrantMutation = errors.New("leadsheet: mutation already in progress")

	// ErrInternal indicates a broken document invariant (should not happen).
	ErrInternal = errors.New("leadsheet: internal error")
)

// PreconditionError describes why a call was rejected before any state
// change.
type PreconditionError struct {
	Op      string // mutator or query name, e.g. "AddSection"
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("leadsheet: %s: %s", e.Op, e.Message)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

func preconditionf(op, format string, args ...any) error {
	return &PreconditionError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// VetoError is returned when a listener refused a change. Reason is meant
// for humans ("this edit is not allowed: ...").
type VetoError struct {
	Reason string
	Event  Event // the refused change
	Err    error // error returned by the listener, if any
}

// NewVetoError builds the error a listener returns from Authorize to refuse
// a change.
func NewVetoError(reason string) *VetoError {
	return &VetoError{Reason: reason}
}

func (e *VetoError) Error() string {
	return fmt.Sprintf("leadsheet: change vetoed: %s", e.Reason)
}

func (e *VetoError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrVetoed, e.Err}
	}
	return []error{ErrVetoed}
}

// assert panics with ErrInternal when cond is false.
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...)))
	}
}
