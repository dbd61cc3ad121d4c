// Package structdata loads key/value records from JSON or YAML files.
package structdata

import "fmt"

// MalformedDataError represents a structured-data file that could not be parsed
type MalformedDataError struct {
	Path    string
	Message string
	Cause   error
}

func (e *MalformedDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed structured data in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed structured data in %s: %s", e.Path, e.Message)
}

func (e *MalformedDataError) Unwrap() error {
	return e.Cause
}

// MissingFieldError reports a key a substitution needs but the record lacks
type MissingFieldError struct {
	Key    string
	Source string
}

func (e *MissingFieldError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("missing required field %q in %s", e.Key, e.Source)
	}
	return fmt.Sprintf("missing required field %q", e.Key)
}
