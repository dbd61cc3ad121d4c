// Package config provides configuration loading and validation for appgen.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default locations and names.
const (
	DefaultRoot            = "./applications"
	DefaultSignatureDir    = "./bin"
	DefaultCertificatesDir = "./certificates"
	DefaultCurriculumDir   = "./cv"
	DefaultCompiler        = "pdflatex"
	DefaultJobName         = "application"
	DefaultSourceName      = "application.tex"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvRoot     = "APPGEN_ROOT"
	EnvCompiler = "APPGEN_COMPILER"
	EnvLogLevel = "APPGEN_LOG_LEVEL"
)

// Config represents the generator configuration that can be loaded from a JSON file.
// Empty values are filled from Default by MergeWithDefaults.
type Config struct {
	// Paths
	Root            string `json:"root,omitempty" validate:"required"`             // Applications root with profile, template and entity dirs
	SignatureDir    string `json:"signature_dir,omitempty" validate:"required"`    // Shared signature image directory
	CertificatesDir string `json:"certificates_dir,omitempty" validate:"required"` // Shared certificate documents
	CurriculumDir   string `json:"curriculum_dir,omitempty" validate:"required"`   // Shared curriculum directory

	// File naming
	DataSuffix        string   `json:"data_suffix,omitempty" validate:"required,oneof=.json .yaml .yml"`
	TemplateSuffix    string   `json:"template_suffix,omitempty" validate:"required"`
	BodySuffix        string   `json:"body_suffix,omitempty" validate:"required"`
	SignatureSuffix   string   `json:"signature_suffix,omitempty" validate:"required"`
	CurriculumSuffix  string   `json:"curriculum_suffix,omitempty" validate:"required"`
	CertificateSuffix string   `json:"certificate_suffix,omitempty" validate:"required"`
	SourceName        string   `json:"source_name,omitempty" validate:"required,excludesall=/\\"` // Intermediate file written per entity
	Byproducts        []string `json:"byproducts,omitempty" validate:"dive,required,startswith=."`

	// Compiler
	Compiler       string `json:"compiler,omitempty" validate:"required"`
	JobName        string `json:"job_name,omitempty" validate:"required,excludesall=/\\"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0"` // 0 disables the limit

	// Behavior
	EscapeValues    bool   `json:"escape_values,omitempty"`     // LaTeX-escape profile and address values
	ContinueOnError bool   `json:"continue_on_error,omitempty"` // Keep going after a failed entity
	DryRun          bool   `json:"dry_run,omitempty"`           // Resolve only; no writes or compilation
	LogLevel        string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:              DefaultRoot,
		SignatureDir:      DefaultSignatureDir,
		CertificatesDir:   DefaultCertificatesDir,
		CurriculumDir:     DefaultCurriculumDir,
		DataSuffix:        ".json",
		TemplateSuffix:    ".tex",
		BodySuffix:        ".txt",
		SignatureSuffix:   ".png",
		CurriculumSuffix:  ".pdf",
		CertificateSuffix: ".pdf",
		SourceName:        DefaultSourceName,
		Byproducts:        []string{".aux", ".log", ".out"},
		Compiler:          DefaultCompiler,
		JobName:           DefaultJobName,
		LogLevel:          "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from APPGEN_* environment variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvCompiler); v != "" {
		c.Compiler = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.DataSuffix == c.BodySuffix {
		return fmt.Errorf("config error: 'data_suffix' and 'body_suffix' must differ")
	}

	return nil
}

// Timeout is the per-compilation limit, zero when disabled.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(field *string, fallback string) {
		if *field == "" {
			*field = fallback
		}
	}
	fill(&result.Root, defaults.Root)
	fill(&result.SignatureDir, defaults.SignatureDir)
	fill(&result.CertificatesDir, defaults.CertificatesDir)
	fill(&result.CurriculumDir, defaults.CurriculumDir)
	fill(&result.DataSuffix, defaults.DataSuffix)
	fill(&result.TemplateSuffix, defaults.TemplateSuffix)
	fill(&result.BodySuffix, defaults.BodySuffix)
	fill(&result.SignatureSuffix, defaults.SignatureSuffix)
	fill(&result.CurriculumSuffix, defaults.CurriculumSuffix)
	fill(&result.CertificateSuffix, defaults.CertificateSuffix)
	fill(&result.SourceName, defaults.SourceName)
	fill(&result.Compiler, defaults.Compiler)
	fill(&result.JobName, defaults.JobName)
	fill(&result.LogLevel, defaults.LogLevel)

	if len(result.Byproducts) == 0 {
		result.Byproducts = append([]string(nil), defaults.Byproducts...)
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
