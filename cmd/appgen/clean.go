package main

import (
	"github.com/jonathan/application-generator/internal/assembler"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove compiler byproducts from every company directory",
	RunE:  runClean,
}

func init() {
	addCommonFlags(cleanCmd)
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	removed, err := assembler.New(cfg, log).Clean()
	for _, path := range removed {
		log.Debugf("removed %s", path)
	}
	log.Infof("removed %d file(s)", len(removed))
	return err
}
