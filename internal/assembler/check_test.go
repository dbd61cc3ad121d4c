package assembler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/application-generator/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingsFor(r *Report, subject string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Subject == subject {
			out = append(out, f)
		}
	}
	return out
}

func TestCheck_Clean(t *testing.T) {
	f := newFixture(t)
	acme := f.entity(t, "acme", acmeJSON, "Body")

	report, err := New(f.cfg, logger.Discard()).Check()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Entities)
	assert.Empty(t, report.Findings)
	assert.False(t, report.HasErrors())
	assert.ElementsMatch(t, []string{"address.json", "body.txt"}, names(t, acme))
}

func TestCheck_ReportsProblems(t *testing.T) {
	f := newFixture(t)
	f.cfg.Compiler = "definitely-not-a-real-compiler-binary"
	f.write(t, "applications/template.tex", template+" {{SALUTATION}}")
	f.entity(t, "acme", `{"company": "Acme", "street": "1 Main", "city": "X"}`, "Body")
	f.entity(t, "extra", `{"company": "", "street": "1 Main", "zip": "1", "city": "X"}`, "Body")

	report, err := New(f.cfg, logger.Discard()).Check()
	require.NoError(t, err)
	assert.True(t, report.HasErrors())

	require.Len(t, findingsFor(report, "compiler"), 1)
	tmpl := findingsFor(report, "template")
	require.Len(t, tmpl, 1)
	assert.Contains(t, tmpl[0].Message, "{{SALUTATION}}")

	acme := findingsFor(report, "acme")
	require.Len(t, acme, 1)
	assert.Equal(t, SeverityError, acme[0].Severity)
	assert.Contains(t, acme[0].Message, `"zip"`)

	extra := findingsFor(report, "extra")
	require.Len(t, extra, 1)
	assert.Equal(t, SeverityWarning, extra[0].Severity)
}

func TestCheck_UnusedFields(t *testing.T) {
	f := newFixture(t)
	f.entity(t, "acme", `{"company": "Acme", "street": "1 Main", "zip": "1", "zipcode": "2", "city": "X"}`, "Body")

	report, err := New(f.cfg, logger.Discard()).Check()
	require.NoError(t, err)
	assert.False(t, report.HasErrors())

	acme := findingsFor(report, "acme")
	require.Len(t, acme, 1)
	assert.Equal(t, SeverityWarning, acme[0].Severity)
	assert.Contains(t, acme[0].Message, `"zipcode"`)
	assert.Empty(t, findingsFor(report, "profile"))
}

func TestCheck_MissingProfile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.cfg.Root, "profile.json")))

	report, err := New(f.cfg, logger.Discard()).Check()
	require.NoError(t, err)
	assert.True(t, report.HasErrors())
	assert.Len(t, findingsFor(report, "root"), 1)
}

func TestClean(t *testing.T) {
	f := newFixture(t)
	acme := f.entity(t, "acme", acmeJSON, "Body")
	for _, name := range []string{"application.aux", "application.log", "application.tex", "application.pdf"} {
		f.write(t, "applications/acme/"+name, "x")
	}

	a := New(f.cfg, logger.Discard())
	removed, err := a.Clean()
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	once := names(t, acme)

	removed, err = a.Clean()
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Equal(t, once, names(t, acme))
	assert.ElementsMatch(t, []string{"address.json", "body.txt", "application.tex", "application.pdf"}, once)
}
