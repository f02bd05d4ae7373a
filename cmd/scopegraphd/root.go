package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath   string
	snapshotPath string
)

var rootCmd = &cobra.Command{
	Use:   "scopegraphd",
	Short: "Incrementally-updating program-fact repository over srcML-style markup",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "override the configured snapshot path")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(scopeCmd)
	rootCmd.AddCommand(callsCmd)
}
