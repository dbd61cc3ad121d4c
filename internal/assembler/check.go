// Package assembler runs the generate-compile-cleanup cycle over every
// application directory.
package assembler

import (
	"fmt"

	"github.com/jonathan/application-generator/internal/entity"
	"github.com/jonathan/application-generator/internal/rendering"
	"github.com/jonathan/application-generator/internal/schemas"
	"github.com/jonathan/application-generator/internal/structdata"
)

// Severity grades a check finding.
type Severity string

// Finding severities.
const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one problem reported by Check.
type Finding struct {
	Severity Severity
	Subject  string // entity name, or "profile" / "template"
	Message  string
}

// Report is the result of a Check.
type Report struct {
	Entities int
	Findings []Finding
}

// HasErrors reports whether any finding would make a run fail.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Report) add(severity Severity, subject, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: severity, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Check inspects the applications root without writing anything: shared
// inputs and every entity are resolved, profile and addresses are checked
// against their schemas, and template placeholders no step fills are
// reported. A missing compiler is reported as an error finding.
func (a *Assembler) Check() (*Report, error) {
	if err := requireDir(a.cfg.Root); err != nil {
		return nil, err
	}

	report := &Report{}
	if _, err := a.compiler.Locate(); err != nil {
		report.add(SeverityError, "compiler", "%v", err)
	}

	in, err := a.load()
	if err != nil {
		report.add(SeverityError, "root", "%v", err)
		return report, nil
	}
	report.Entities = len(in.entities)

	if err := schemas.ValidateApplicantProfile(in.profile.Fields); err != nil {
		report.add(SeverityWarning, "profile", "%v", err)
	}
	for _, key := range unusedFields(in.profile, rendering.PersonalBindings) {
		report.add(SeverityWarning, "profile", "field %q is not used by any placeholder", key)
	}
	for _, token := range rendering.Unknown(in.template) {
		report.add(SeverityWarning, "template", "placeholder %s is never filled", token)
	}
	if len(in.entities) == 0 {
		report.add(SeverityWarning, "root", "no entity directories in %s", a.cfg.Root)
	}

	for _, e := range in.entities {
		a.checkEntity(report, in, e)
	}
	return report, nil
}

func (a *Assembler) checkEntity(report *Report, in *inputs, e entity.Entity) {
	if _, err := in.resolver.Resolve(e, in.profile, in.template); err != nil {
		report.add(SeverityError, e.Name, "%v", err)
		return
	}

	address, err := in.resolver.Address(e)
	if err != nil {
		report.add(SeverityError, e.Name, "%v", err)
		return
	}
	if err := schemas.ValidateAddress(address.Fields); err != nil {
		report.add(SeverityWarning, e.Name, "%v", err)
	}
	for _, key := range unusedFields(address, rendering.AddressBindings) {
		report.add(SeverityWarning, e.Name, "field %q is not used by any placeholder", key)
	}
}

// unusedFields lists record keys that no binding reads, usually a typo such
// as "zipcode" for "zip".
func unusedFields(record structdata.Record, bindings []rendering.Binding) []string {
	bound := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		bound[b.Key] = true
	}
	var unused []string
	for _, key := range record.Keys() {
		if !bound[key] {
			unused = append(unused, key)
		}
	}
	return unused
}
