// Package main contains the schemawright CLI: a thin cobra wrapper that
// wires the schema parser, migration core, and filesystem/database
// collaborators together behind init/generate/apply/rollback/status
// subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/brindlebyte/schemawright/dialect/mysql"
	_ "github.com/brindlebyte/schemawright/dialect/postgres"
	_ "github.com/brindlebyte/schemawright/dialect/sqlite"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "schemawright",
		Short: "Declarative schema migration tool",
	}

	var configPath string
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to .schemawright.toml")

	rootCmd.AddCommand(initCmd(&configPath))
	rootCmd.AddCommand(generateCmd(&configPath))
	rootCmd.AddCommand(applyCmd(&configPath))
	rootCmd.AddCommand(rollbackCmd(&configPath))
	rootCmd.AddCommand(statusCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
