// Package cmd wires up the subtle command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for subtle.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subtle",
		Short:         "Agent session log explorer",
		Long:          "Browse, reconstruct and search recorded coding-agent work sessions.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newTailCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
