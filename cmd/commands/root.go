package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Define root command
	rootCmd := &cobra.Command{
		Use:   "extpoint",
		Short: "SDK tooling for building host UI extensions",
	}

	// Add subcommands
	rootCmd.AddCommand(
		NewCreateCommand(),
		NewPointsCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
