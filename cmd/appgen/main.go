// Package main provides the entry point for the appgen application generator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "appgen",
	Short: "Batch-generate personalized application letters",
	Long: `appgen merges a shared LaTeX template with applicant data, per-company
addresses and letter text, then compiles one document per company directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
