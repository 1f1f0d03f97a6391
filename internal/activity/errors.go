// Package activity implements the campaign activity executors: warming,
// profile updates, and the account-list-scoped mass actions. Executors never
// abort a batch for one account's failure; anything caught at a session
// boundary becomes a failed result and the loop moves on.
package activity

import "fmt"

// Error is the recoverable, session-granular failure class. It is caught at
// the session boundary, recorded as a failed result, and does not stop the
// batch.
type Error struct {
	Account string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Account, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError is fatal for one orchestrator call: the phase has no
// usable target, so neither it nor any later phase can run.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}
