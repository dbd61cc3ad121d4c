// Package logger provides the leveled console logger used by appgen.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering
const (
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger writes timestamped, leveled lines to a writer.
// Output is colored when the writer is a terminal and NO_COLOR is unset.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger for writer. A nil writer discards
// everything. Unknown or empty levels fall back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		level:       parseLevel(logLevel),
		colorOutput: isTerminal(writer),
		now:         time.Now,
	}
}

// Discard returns a logger that drops every message.
func Discard() *ConsoleLogger {
	return NewConsoleLogger(nil, "")
}

func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs a debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.log(levelDebug, "DEBUG", fmt.Sprintf(format, args...))
}

// Infof logs an info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.log(levelInfo, "INFO", fmt.Sprintf(format, args...))
}

// Warnf logs a warning.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.log(levelWarn, "WARN", fmt.Sprintf(format, args...))
}

// Errorf logs an error.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.log(levelError, "ERROR", fmt.Sprintf(format, args...))
}

func (cl *ConsoleLogger) log(level int, name, message string) {
	if cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	if cl.colorOutput {
		name = levelColor(level).Sprint(name)
	}
	//nolint:errcheck // console output; nothing to do on failure
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, name, message)
}

func levelColor(level int) *color.Color {
	switch level {
	case levelDebug:
		return color.New(color.FgCyan)
	case levelWarn:
		return color.New(color.FgYellow)
	case levelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}
