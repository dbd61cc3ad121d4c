// Package assembler runs the generate-compile-cleanup cycle over every
// application directory.
package assembler

import (
	"fmt"
	"strings"
)

// RunError aggregates the entities that failed during a run
type RunError struct {
	Failed []Outcome
	Total  int
}

func (e *RunError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of %d entities failed", len(e.Failed), e.Total)
	for _, o := range e.Failed {
		fmt.Fprintf(&sb, "\n  %s: %v", o.Entity.Name, o.Err)
	}
	return sb.String()
}

// Unwrap exposes each entity failure to errors.Is and errors.As.
func (e *RunError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, o := range e.Failed {
		errs = append(errs, o.Err)
	}
	return errs
}
