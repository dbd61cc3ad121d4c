package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jonathan/application-generator/internal/assembler"
	"github.com/jonathan/application-generator/internal/observability"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Generate and compile a document for every company directory",
	Long: `Loads the applicant profile and master template from the applications root,
then for each company subdirectory: merges the template, writes application.tex,
compiles it and removes the compiler byproducts.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	runContinueOnError bool
	runDryRun          bool
	runQuiet           bool
)

func init() {
	addCommonFlags(runCommand)
	runCommand.Flags().BoolVar(&runContinueOnError, "continue-on-error", false, "Keep processing remaining companies after a failure")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Resolve every document without writing or compiling")
	runCommand.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not print the run summary")

	rootCmd.AddCommand(runCommand)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("continue-on-error") {
		cfg.ContinueOnError = runContinueOnError
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = runDryRun
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := assembler.New(cfg, newLogger(cfg)).Run(ctx)
	if !runQuiet && summary != nil && summary.Total > 0 {
		observability.NewPrinter(os.Stdout).PrintSummary(summary)
	}
	return err
}
