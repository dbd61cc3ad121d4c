// Package compiler drives the external document compiler.
package compiler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultExecutable is the compiler looked up when none is configured
	DefaultExecutable = "pdflatex"
	// DefaultJobName is the base name of the compiled output
	DefaultJobName = "application"
	// maxStderr bounds how much compiler stderr is kept in a CompilationError
	maxStderr = 4096
	// waitDelay caps how long output pipes may outlive a killed compiler
	waitDelay = 2 * time.Second
)

// Compiler runs an external LaTeX-style compiler.
type Compiler struct {
	Executable string
	JobName    string
	// Timeout bounds a single compilation; zero means no limit.
	Timeout time.Duration

	path string
}

// New creates a Compiler, falling back to the defaults for empty values.
func New(executable, jobName string, timeout time.Duration) *Compiler {
	if executable == "" {
		executable = DefaultExecutable
	}
	if jobName == "" {
		jobName = DefaultJobName
	}
	return &Compiler{Executable: executable, JobName: jobName, Timeout: timeout}
}

// Locate resolves the executable on the PATH and remembers the result.
func (c *Compiler) Locate() (string, error) {
	if c.path != "" {
		return c.path, nil
	}
	path, err := exec.LookPath(c.Executable)
	if err != nil {
		return "", &NotFoundError{Executable: c.Executable, Cause: err}
	}
	c.path = path
	return path, nil
}

// Args builds the argument list for compiling source into outDir.
func (c *Compiler) Args(source, outDir string) []string {
	return []string{
		"-interaction=nonstopmode",
		"-output-directory=" + outDir,
		"-jobname=" + c.JobName,
		source,
	}
}

// OutputPath is where the compiled document lands for outDir.
func (c *Compiler) OutputPath(outDir string) string {
	return filepath.Join(outDir, c.JobName+".pdf")
}

// Compile runs the compiler on source, writing its output into outDir.
// Standard output is discarded; a non-zero exit becomes a *CompilationError
// carrying the tail of standard error.
func (c *Compiler) Compile(ctx context.Context, source, outDir string) error {
	path, err := c.Locate()
	if err != nil {
		return err
	}

	absSource, err := filepath.Abs(source)
	if err != nil {
		return &CompilationError{Source: source, Cause: err}
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return &CompilationError{Source: source, Cause: err}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, c.Args(absSource, absOut)...)
	cmd.Dir = absOut
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return &CompilationError{
			Source: absSource,
			Stderr: tail(strings.TrimSpace(stderr.String()), maxStderr),
			Cause:  err,
		}
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
