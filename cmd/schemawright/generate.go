package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brindlebyte/schemawright/destructive"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/meta"
	"github.com/brindlebyte/schemawright/migrationfs"
	"github.com/brindlebyte/schemawright/pipeline"
	"github.com/brindlebyte/schemawright/schema"
	"github.com/brindlebyte/schemawright/schema/syaml"
)

func generateCmd(configPath *string) *cobra.Command {
	var description string
	var dialectFlag string
	var dryRun bool
	var allowDestructive bool

	cmd := &cobra.Command{
		Use:   "generate <schema.yaml>",
		Short: "Diff the authored schema against the last snapshot and emit a migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(*configPath, args[0], description, dialectFlag, dryRun, allowDestructive)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "m", "", "Short description of the migration (required)")
	cmd.Flags().StringVar(&dialectFlag, "dialect", "", "Target dialect, overrides the project config default")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the generated SQL without writing any files")
	cmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "Permit destructive changes, overrides the project config default")

	return cmd
}

func runGenerate(configPath, schemaPath, description, dialectFlag string, dryRun, allowDestructiveFlag bool) error {
	if description == "" {
		return fmt.Errorf("generate: --description is required")
	}

	cfg, err := loadProjectConfig(configPath)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	dialectName := schema.Dialect(cfg.DefaultDialect)
	if dialectFlag != "" {
		dialectName = schema.Dialect(dialectFlag)
	}
	if !dialectName.Valid() {
		return fmt.Errorf("generate: unsupported dialect %q", dialectName)
	}

	newSchema, err := syaml.NewParser().ParseFile(schemaPath)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	store := migrationfs.NewStore(cfg.OutputDir)
	oldSchema, err := store.ReadPreviousSchema()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	schemaDiff := diff.DetectDiff(oldSchema, newSchema)
	if schemaDiff.IsEmpty() {
		fmt.Println("no schema changes detected")
		return nil
	}

	allowDestructive := newSchema.EnumRecreateAllowed || cfg.AllowDestructive || allowDestructiveFlag
	p := pipeline.New(schemaDiff, dialectName).
		WithSchemas(oldSchema, newSchema).
		WithAllowDestructive(allowDestructive)

	report, err := p.CheckDestructive(dryRun)
	if err != nil {
		if _, ok := err.(*pipeline.DestructiveRefusalError); ok {
			return fmt.Errorf("generate: %s", destructive.FormatRefusal(report, "schemawright generate"))
		}
		return fmt.Errorf("generate: %w", err)
	}

	upSQL, upResult, err := p.GenerateUp()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	downSQL, _, err := p.GenerateDown()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	for _, w := range upResult.Warnings {
		fmt.Printf("warning: %s\n", w.Message)
	}

	if dryRun {
		fmt.Println("--- up.sql ---")
		fmt.Println(upSQL)
		fmt.Println("--- down.sql ---")
		fmt.Println(downSQL)
		if report.HasDestructiveChanges() {
			fmt.Print(destructive.FormatWarning(report))
			fmt.Println("note: rerun without --dry-run with --allow-destructive to write this migration")
		}
		return nil
	}

	if report.HasDestructiveChanges() {
		fmt.Print(destructive.FormatWarning(report))
	}

	version := time.Now().UTC().Format("20060102150405")
	md, err := meta.Build(version, description, dialectName, newSchema, report)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	m := migrationfs.NewMigration(version, description)
	dir, err := store.Write(m, upSQL, downSQL, md, newSchema)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fmt.Printf("wrote migration %s\n", dir)
	return nil
}
