package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brindlebyte/schemawright/migrationfs"
)

func statusCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List the migrations recorded under the project's output directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus(*configPath)
		},
	}
	return cmd
}

func runStatus(configPath string) error {
	cfg, err := loadProjectConfig(configPath)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	store := migrationfs.NewStore(cfg.OutputDir)

	list, err := store.List()
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("no migrations found")
		return nil
	}

	for _, m := range list {
		md, err := store.ReadMeta(m)
		if err != nil {
			fmt.Printf("%s  (failed to read metadata: %v)\n", m.DirName, err)
			continue
		}
		marker := ""
		if reportFromMeta(md).HasDestructiveChanges() {
			marker = "  [destructive]"
		}
		fmt.Printf("%s  %s%s\n", m.Version, md.Description, marker)
	}
	return nil
}
