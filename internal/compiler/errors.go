// Package compiler drives the external document compiler.
package compiler

import "fmt"

// NotFoundError reports that the compiler executable is not on the PATH
type NotFoundError struct {
	Executable string
	Cause      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("compiler not found: %s is not installed or not in PATH: %v", e.Executable, e.Cause)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a compiler run that exited unsuccessfully
type CompilationError struct {
	Source string
	Stderr string
	Cause  error
}

func (e *CompilationError) Error() string {
	msg := fmt.Sprintf("compilation failed for %s: %v", e.Source, e.Cause)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
