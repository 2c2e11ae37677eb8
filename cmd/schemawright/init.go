package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func initCmd(configPath *string) *cobra.Command {
	var dialect string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .schemawright.toml project config and the migrations directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(*configPath, dialect, outputDir)
		},
	}

	cmd.Flags().StringVar(&dialect, "dialect", "postgresql", "Default target dialect (postgresql, mysql, sqlite)")
	cmd.Flags().StringVar(&outputDir, "output-dir", defaultOutputDir, "Directory migrations are written under")

	return cmd
}

func runInit(configPath, dialect, outputDir string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("init: %s already exists", configPath)
	}

	contents := fmt.Sprintf(
		"output_dir = %q\ndefault_dialect = %q\nallow_destructive = false\n",
		outputDir, dialect,
	)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("init: write %s: %w", configPath, err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("init: create %s: %w", outputDir, err)
	}

	fmt.Printf("wrote %s and created %s/\n", configPath, outputDir)
	return nil
}
