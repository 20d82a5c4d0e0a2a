package main

import (
	"os"

	"github.com/spf13/cobra"

	"lumina/internal/interfaces/cli/migrate"
	"lumina/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumina",
		Short: "Lumina - chat subscription and quota service",
		Long:  `Lumina serves the chat API with subscription bundles, monthly free quota accounting, and automatic renewals.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
