// Package assembler runs the generate-compile-cleanup cycle over every
// application directory.
package assembler

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/application-generator/internal/entity"
)

// Outcome is the result of processing one entity.
type Outcome struct {
	Entity   entity.Entity
	Source   string // intermediate source file, empty in dry runs
	Output   string // compiled document, empty in dry runs
	Removed  []string
	Err      error
	Duration time.Duration
}

// OK reports whether the entity was processed without error.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Summary describes a whole run.
type Summary struct {
	RunID     uuid.UUID
	Root      string
	DryRun    bool
	Total     int
	Outcomes  []Outcome
	StartedAt time.Time
	Duration  time.Duration
}

// Succeeded counts entities processed without error.
func (s *Summary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that carry an error.
func (s *Summary) Failed() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Skipped counts entities never reached because the run stopped early.
func (s *Summary) Skipped() int {
	return s.Total - len(s.Outcomes)
}

// Err returns a *RunError when any entity failed, nil otherwise.
func (s *Summary) Err() error {
	failed := s.Failed()
	if len(failed) == 0 {
		return nil
	}
	return &RunError{Failed: failed, Total: s.Total}
}
