// Package cli implements the Exhale command-line interface using Cobra.
// Each subcommand maps to a daily-use action (log, status, profile, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "exhale",
	Short: "Exhale — Your quit-smoking companion",
	Long: `Exhale tracks your smoke-free progress locally.
Log cravings and slips, watch your savings grow, unlock milestones.
All data stays on your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
