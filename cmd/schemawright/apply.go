package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brindlebyte/schemawright/dbapply"
	"github.com/brindlebyte/schemawright/destructive"
	"github.com/brindlebyte/schemawright/meta"
	"github.com/brindlebyte/schemawright/migrationfs"
	"github.com/brindlebyte/schemawright/schema"
)

func applyCmd(configPath *string) *cobra.Command {
	var dsn string
	var version string
	var dryRun bool
	var transaction bool
	var allowDestructive bool
	var skipConfirmation bool
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a migration's up.sql against a real database",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApplyOrRollback(*configPath, dsn, version, dryRun, transaction, allowDestructive, skipConfirmation, timeoutSeconds, true)
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "Database connection string (required)")
	cmd.Flags().StringVar(&version, "migration", "", "Migration version to apply (defaults to the latest)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statements that would run without executing them")
	cmd.Flags().BoolVar(&transaction, "transaction", true, "Run the migration inside a transaction where supported")
	cmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "Permit applying a migration flagged as destructive")
	cmd.Flags().BoolVarP(&skipConfirmation, "yes", "y", false, "Skip the execute confirmation prompt")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 300, "Timeout in seconds for connecting and running the statements")

	return cmd
}

func rollbackCmd(configPath *string) *cobra.Command {
	var dsn string
	var version string
	var dryRun bool
	var transaction bool
	var allowDestructive bool
	var skipConfirmation bool
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Apply a migration's down.sql against a real database",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApplyOrRollback(*configPath, dsn, version, dryRun, transaction, allowDestructive, skipConfirmation, timeoutSeconds, false)
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "Database connection string (required)")
	cmd.Flags().StringVar(&version, "migration", "", "Migration version to roll back (defaults to the latest)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statements that would run without executing them")
	cmd.Flags().BoolVar(&transaction, "transaction", true, "Run the rollback inside a transaction where supported")
	cmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "Permit rolling back a migration flagged as destructive")
	cmd.Flags().BoolVarP(&skipConfirmation, "yes", "y", false, "Skip the execute confirmation prompt")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 300, "Timeout in seconds for connecting and running the statements")

	return cmd
}

func runApplyOrRollback(configPath, dsn, version string, dryRun, transaction, allowDestructive, skipConfirmation bool, timeoutSeconds int, up bool) error {
	if dsn == "" && !dryRun {
		return fmt.Errorf("--dsn is required unless --dry-run is set")
	}

	cfg, err := loadProjectConfig(configPath)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	store := migrationfs.NewStore(cfg.OutputDir)

	m, err := resolveMigration(store, version)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	body, err := store.ReadSQL(m, up)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	md, err := store.ReadMeta(m)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	report := reportFromMeta(md)

	applier := dbapply.NewApplier(dbapply.Options{
		Dialect:          schema.Dialect(cfg.DefaultDialect),
		DSN:              dsn,
		Transaction:      transaction,
		DryRun:           dryRun,
		SkipConfirmation: skipConfirmation,
		Out:              os.Stdout,
		In:               os.Stdin,
	})

	if dryRun {
		return applier.Run(context.Background(), body, report, allowDestructive || cfg.AllowDestructive)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	if err := applier.Connect(ctx); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	defer applier.Close()

	return applier.Run(ctx, body, report, allowDestructive || cfg.AllowDestructive)
}

func resolveMigration(store *migrationfs.Store, version string) (migrationfs.Migration, error) {
	list, err := store.List()
	if err != nil {
		return migrationfs.Migration{}, err
	}
	if len(list) == 0 {
		return migrationfs.Migration{}, fmt.Errorf("no migrations found under %s", store.Dir)
	}
	if version == "" {
		return list[len(list)-1], nil
	}
	for _, m := range list {
		if m.Version == version {
			return m, nil
		}
	}
	return migrationfs.Migration{}, fmt.Errorf("migration %q not found", version)
}

// reportFromMeta reconstructs enough of a destructive.Report from a
// migration's recorded metadata to gate apply/rollback the same way
// generation gated emission, without re-running the diff.
func reportFromMeta(md *meta.Metadata) *destructive.Report {
	dc := md.DestructiveChanges
	report := &destructive.Report{
		TablesDropped:  dc.TablesDropped,
		EnumsDropped:   dc.EnumsDropped,
		EnumsRecreated: dc.EnumsRecreated,
	}
	for _, c := range dc.ColumnsDropped {
		report.ColumnsDropped = append(report.ColumnsDropped, destructive.ColumnsDropped{Table: c.Table, Columns: c.Columns})
	}
	for _, c := range dc.ColumnsRenamed {
		report.ColumnsRenamed = append(report.ColumnsRenamed, destructive.ColumnRenamed{Table: c.Table, Old: c.Old, New: c.New})
	}
	return report
}
