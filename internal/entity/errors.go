// Package entity resolves the merged document for one application directory.
package entity

import "fmt"

// Error tags a resolution failure with the entity directory it happened in
type Error struct {
	Dir   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("entity %s: %v", e.Dir, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
