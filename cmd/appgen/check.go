package main

import (
	"fmt"
	"os"

	"github.com/jonathan/application-generator/internal/assembler"
	"github.com/jonathan/application-generator/internal/observability"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check inputs without generating anything",
	Long:  "Resolves every company directory, validates the profile and addresses against their schemas and reports template placeholders that are never filled.",
	RunE:  runCheck,
}

func init() {
	addCommonFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	report, err := assembler.New(cfg, newLogger(cfg)).Check()
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintReport(report)

	// Return error to indicate problems were found (exit code 1)
	if report.HasErrors() {
		return fmt.Errorf("check found errors")
	}
	return nil
}
