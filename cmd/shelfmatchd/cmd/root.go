// Package cmd implements the shelfmatchd daemon commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "shelfmatchd",
	Short: "Grocery price comparison service",
	Long: "An API-first service that normalizes free-form grocery package sizes, " +
		"derives comparable unit prices, and ranks store entries so the cheapest " +
		"equivalent package is always one query away.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
