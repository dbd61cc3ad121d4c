// Package assembler runs the generate-compile-cleanup cycle over every
// application directory.
package assembler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/application-generator/internal/compiler"
	"github.com/jonathan/application-generator/internal/config"
	"github.com/jonathan/application-generator/internal/entity"
	"github.com/jonathan/application-generator/internal/filelock"
	"github.com/jonathan/application-generator/internal/locate"
	"github.com/jonathan/application-generator/internal/structdata"
)

// Logger is the logging surface the assembler needs.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Assembler generates one compiled document per entity directory.
type Assembler struct {
	cfg      config.Config
	compiler *compiler.Compiler
	log      Logger
}

// New creates an Assembler for a validated configuration.
func New(cfg config.Config, log Logger) *Assembler {
	return &Assembler{
		cfg:      cfg,
		compiler: compiler.New(cfg.Compiler, cfg.JobName, cfg.Timeout()),
		log:      log,
	}
}

// inputs are loaded once per run and shared read-only by every entity.
type inputs struct {
	entities []entity.Entity
	profile  structdata.Record
	template string
	resolver *entity.Resolver
}

// Run processes every entity sequentially. The compiler is located before
// anything is written; if it is missing the run ends with a
// *compiler.NotFoundError and no entity is touched.
//
// With ContinueOnError unset the run stops at the first failing entity.
// Either way the returned summary lists every processed entity and the error
// is a *RunError when any of them failed.
func (a *Assembler) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.New(),
		Root:      a.cfg.Root,
		DryRun:    a.cfg.DryRun,
		StartedAt: time.Now(),
	}
	defer func() { summary.Duration = time.Since(summary.StartedAt) }()

	if err := requireDir(a.cfg.Root); err != nil {
		return summary, err
	}

	if !a.cfg.DryRun {
		path, err := a.compiler.Locate()
		if err != nil {
			return summary, err
		}
		a.log.Debugf("using compiler %s", path)

		lock := filelock.NewRunLock(a.cfg.Root)
		if err := lock.Acquire(); err != nil {
			return summary, err
		}
		a.log.Debugf("holding run lock %s", lock.Path())
		defer func() {
			if err := lock.Release(); err != nil {
				a.log.Warnf("%v", err)
			}
		}()
	}

	in, err := a.load()
	if err != nil {
		return summary, err
	}
	summary.Total = len(in.entities)

	a.log.Infof("processing %d entities...", len(in.entities))
	for _, e := range in.entities {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome := a.process(ctx, in, e)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.OK() {
			a.log.Infof("%s: done (%s)", e.Name, outcome.Duration.Round(time.Millisecond))
			continue
		}

		a.log.Errorf("%s: %v", e.Name, outcome.Err)
		if !a.cfg.ContinueOnError {
			return summary, summary.Err()
		}
	}
	a.log.Infof("finished.")

	return summary, summary.Err()
}

// load reads the shared inputs: entity list, applicant profile, master
// template and optional artifacts.
func (a *Assembler) load() (*inputs, error) {
	dirs, err := locate.Subdirectories(a.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities in %s: %w", a.cfg.Root, err)
	}
	entities := make([]entity.Entity, 0, len(dirs))
	for _, dir := range dirs {
		entities = append(entities, entity.FromDir(dir))
	}

	loader := structdata.NewLoader(a.cfg.DataSuffix)
	profile, err := loader.Load(a.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to load applicant profile: %w", err)
	}

	templatePath, err := locate.Required(a.cfg.Root, a.cfg.TemplateSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to load master template: %w", err)
	}
	template, err := locate.ReadText(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load master template: %w", err)
	}
	a.log.Debugf("template %s, profile %s", templatePath, profile.Source)

	artifacts, err := entity.LoadArtifacts(entity.ArtifactSource{
		SignatureDir:      a.cfg.SignatureDir,
		SignatureSuffix:   a.cfg.SignatureSuffix,
		CurriculumDir:     a.cfg.CurriculumDir,
		CurriculumSuffix:  a.cfg.CurriculumSuffix,
		CertificatesDir:   a.cfg.CertificatesDir,
		CertificateSuffix: a.cfg.CertificateSuffix,
	})
	if err != nil {
		return nil, err
	}
	if artifacts.Signature == "" {
		a.log.Warnf("no signature (*%s) in %s", a.cfg.SignatureSuffix, a.cfg.SignatureDir)
	}
	a.log.Debugf("%d certificate(s), curriculum %q", len(artifacts.Certificates), artifacts.Curriculum)

	resolver := entity.NewResolver(loader, a.cfg.BodySuffix, artifacts)
	resolver.Escape = a.cfg.EscapeValues

	return &inputs{
		entities: entities,
		profile:  profile,
		template: template,
		resolver: resolver,
	}, nil
}

// process runs resolve, write, compile and cleanup for one entity.
func (a *Assembler) process(ctx context.Context, in *inputs, e entity.Entity) (outcome Outcome) {
	start := time.Now()
	outcome = Outcome{Entity: e}
	defer func() { outcome.Duration = time.Since(start) }()

	text, err := in.resolver.Resolve(e, in.profile, in.template)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if a.cfg.DryRun {
		return outcome
	}

	source := filepath.Join(e.Dir, a.cfg.SourceName)
	if err := filelock.WriteFile(source, []byte(text)); err != nil {
		outcome.Err = &entity.Error{Dir: e.Dir, Cause: err}
		return outcome
	}
	outcome.Source = source

	if err := a.compiler.Compile(ctx, source, e.Dir); err != nil {
		outcome.Err = &entity.Error{Dir: e.Dir, Cause: err}
		return outcome
	}
	outcome.Output = a.compiler.OutputPath(e.Dir)

	removed, err := compiler.Cleanup(e.Dir, a.cfg.Byproducts, source, outcome.Output)
	if err != nil {
		a.log.Warnf("%s: cleanup incomplete: %v", e.Name, err)
	}
	outcome.Removed = removed

	return outcome
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("applications root %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("applications root %s is not a directory", path)
	}
	return nil
}
