// Package locate finds input files inside application directories.
package locate

import "fmt"

// MissingFileError reports that a mandatory input file is absent
type MissingFileError struct {
	Dir    string
	Suffix string
	Cause  error
}

func (e *MissingFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("missing required file: no *%s in %s: %v", e.Suffix, e.Dir, e.Cause)
	}
	return fmt.Sprintf("missing required file: no *%s in %s", e.Suffix, e.Dir)
}

func (e *MissingFileError) Unwrap() error {
	return e.Cause
}

// FileReadError represents an error reading a located file
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("file read error: %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
