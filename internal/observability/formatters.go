// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/application-generator/internal/assembler"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxFailuresToShow caps the failures listed in a run summary
	maxFailuresToShow = 5
)

// Printer handles formatted output for run summaries and check reports
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens long lines to fit the box, counting runes.
func truncate(line string) string {
	runes := []rune(line)
	if len(runes) > boxWidth-4 {
		return string(runes[:boxWidth-7]) + "..."
	}
	return line
}

// PrintSummary outputs the result of a run.
func (p *Printer) PrintSummary(summary *assembler.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Root:      %s\n", summary.Root))
	sb.WriteString(fmt.Sprintf("Entities:  %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Succeeded: %d\n", summary.Succeeded()))

	failed := summary.Failed()
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", len(failed)))
	if skipped := summary.Skipped(); skipped > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:   %d\n", skipped))
	}
	sb.WriteString(fmt.Sprintf("Duration:  %s", summary.Duration.Round(time.Millisecond)))

	if len(failed) > 0 {
		sb.WriteString("\n\nFailures:\n")
		count := min(len(failed), maxFailuresToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", failed[i].Entity.Name))
		}
		if len(failed) > maxFailuresToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(failed)-maxFailuresToShow))
		}
	}

	title := "RUN SUMMARY"
	if summary.DryRun {
		title += " (dry run)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the findings of a check.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *assembler.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Entities checked: %d\n", report.Entities))
	if len(report.Findings) == 0 {
		sb.WriteString("No problems found")
		p.printBox("CHECK REPORT", sb.String())
		return
	}
	sb.WriteString(fmt.Sprintf("Findings: %d", len(report.Findings)))
	p.printBox("CHECK REPORT", sb.String())

	// Findings can be long multi-line errors, so they go below the box unwrapped.
	for _, f := range report.Findings {
		fmt.Fprintf(p.out, "[%s] %s: %s\n", f.Severity, f.Subject, strings.TrimSpace(f.Message))
	}
}
