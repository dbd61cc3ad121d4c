package compiler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler returns the absolute path of the shell stand-in for pdflatex.
func fakeCompiler(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler is a shell script")
	}
	path, err := filepath.Abs(filepath.Join("testdata", "fakelatex.sh"))
	require.NoError(t, err)
	require.NoError(t, os.Chmod(path, 0755))
	return path
}

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "application.tex")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	c := New("", "", 0)
	assert.Equal(t, DefaultExecutable, c.Executable)
	assert.Equal(t, DefaultJobName, c.JobName)
	assert.Equal(t, filepath.Join("out", "application.pdf"), c.OutputPath("out"))
}

func TestArgs(t *testing.T) {
	c := New("pdflatex", "letter", 0)
	assert.Equal(t, []string{
		"-interaction=nonstopmode",
		"-output-directory=/tmp/acme",
		"-jobname=letter",
		"/tmp/acme/application.tex",
	}, c.Args("/tmp/acme/application.tex", "/tmp/acme"))
}

func TestLocate_NotFound(t *testing.T) {
	c := New("definitely-not-a-real-compiler-binary", "", 0)
	_, err := c.Locate()
	require.Error(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "definitely-not-a-real-compiler-binary", notFound.Executable)
	assert.Contains(t, err.Error(), "compiler not found")
}

func TestCompile_NotFound(t *testing.T) {
	c := New("definitely-not-a-real-compiler-binary", "", 0)
	err := c.Compile(context.Background(), "application.tex", t.TempDir())
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCompile_Success(t *testing.T) {
	exe := fakeCompiler(t)
	tmpDir := t.TempDir()
	source := writeSource(t, tmpDir, `\documentclass{letter}`)

	c := New(exe, "application", 0)
	require.NoError(t, c.Compile(context.Background(), source, tmpDir))

	_, err := os.Stat(c.OutputPath(tmpDir))
	assert.NoError(t, err, "PDF should exist")

	invocations, err := os.ReadFile(filepath.Join(tmpDir, "invocations.args"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(invocations)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "-jobname=application")
	assert.Contains(t, lines[0], "-output-directory="+tmpDir)
	assert.True(t, strings.HasSuffix(lines[0], source))
}

func TestCompile_FailureReportsStderr(t *testing.T) {
	exe := fakeCompiler(t)
	tmpDir := t.TempDir()
	source := writeSource(t, tmpDir, `\FAIL`)

	err := New(exe, "", 0).Compile(context.Background(), source, tmpDir)
	require.Error(t, err)
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, source, compErr.Source)
	assert.Contains(t, compErr.Stderr, "Undefined control sequence")
	assert.NotContains(t, err.Error(), "this is stdout")
	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)
}

func TestCompile_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}
	tmpDir := t.TempDir()
	exe := filepath.Join(tmpDir, "slowlatex")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\nexec sleep 5\n"), 0755))
	source := writeSource(t, tmpDir, "x")

	start := time.Now()
	err := New(exe, "", 100*time.Millisecond).Compile(context.Background(), source, tmpDir)
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestCompile_RealPdflatex(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not available, skipping compilation test")
	}

	tmpDir := t.TempDir()
	source := writeSource(t, tmpDir, `\documentclass{article}
\begin{document}
Hello, World!
\end{document}`)

	c := New("pdflatex", "application", 30*time.Second)
	require.NoError(t, c.Compile(context.Background(), source, tmpDir))
	_, err := os.Stat(c.OutputPath(tmpDir))
	assert.NoError(t, err)
}
