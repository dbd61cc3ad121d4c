package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/application-generator/internal/config"
	"github.com/jonathan/application-generator/internal/logger"
	"github.com/spf13/cobra"
)

// Flags shared by run, check and clean. Values only apply when explicitly set.
var (
	flagConfigPath      string
	flagRoot            string
	flagSignatureDir    string
	flagCertificatesDir string
	flagCurriculumDir   string
	flagDataSuffix      string
	flagCompiler        string
	flagJobName         string
	flagTimeout         time.Duration
	flagEscape          bool
	flagLogLevel        string
)

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to config JSON file (values can be overridden by other flags)")
	cmd.Flags().StringVarP(&flagRoot, "root", "r", "", "Applications root directory (default "+config.DefaultRoot+")")
	cmd.Flags().StringVar(&flagSignatureDir, "signature-dir", "", "Directory holding the signature image (default "+config.DefaultSignatureDir+")")
	cmd.Flags().StringVar(&flagCertificatesDir, "certificates-dir", "", "Directory holding certificate PDFs (default "+config.DefaultCertificatesDir+")")
	cmd.Flags().StringVar(&flagCurriculumDir, "cv-dir", "", "Directory holding the curriculum PDF (default "+config.DefaultCurriculumDir+")")
	cmd.Flags().StringVar(&flagDataSuffix, "data-suffix", "", "Suffix of profile and address files: .json, .yaml or .yml")
	cmd.Flags().StringVar(&flagCompiler, "compiler", "", "Document compiler executable (default "+config.DefaultCompiler+")")
	cmd.Flags().StringVar(&flagJobName, "job-name", "", "Output job name (default "+config.DefaultJobName+")")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-document compile timeout in whole seconds, e.g. 60s (0 = none)")
	cmd.Flags().BoolVar(&flagEscape, "escape", false, "LaTeX-escape profile and address values")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// resolveConfig merges, in increasing priority: defaults, config file,
// APPGEN_* environment variables, explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if cmd.Flags().Changed("config") && flagConfigPath != "" {
		loaded, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = flagRoot
	}
	if flags.Changed("signature-dir") {
		cfg.SignatureDir = flagSignatureDir
	}
	if flags.Changed("certificates-dir") {
		cfg.CertificatesDir = flagCertificatesDir
	}
	if flags.Changed("cv-dir") {
		cfg.CurriculumDir = flagCurriculumDir
	}
	if flags.Changed("data-suffix") {
		cfg.DataSuffix = flagDataSuffix
	}
	if flags.Changed("compiler") {
		cfg.Compiler = flagCompiler
	}
	if flags.Changed("job-name") {
		cfg.JobName = flagJobName
	}
	if flags.Changed("timeout") {
		if flagTimeout < 0 || flagTimeout%time.Second != 0 {
			return config.Config{}, fmt.Errorf("invalid --timeout %s: must be a whole number of seconds, 0 for none", flagTimeout)
		}
		cfg.TimeoutSeconds = int(flagTimeout / time.Second)
	}
	if flags.Changed("escape") {
		cfg.EscapeValues = flagEscape
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)
}
