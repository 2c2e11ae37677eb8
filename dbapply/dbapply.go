// Package dbapply connects to a real database and executes a generated
// migration body against it. It plays the role of the "apply"
// collaborator the core never touches directly: the core only emits SQL
// text, and this package is responsible for splitting it back into
// individual statements (on the `;\n\n` separator §6.3 guarantees) and
// running them, optionally inside a transaction, against the dialect the
// migration targets.
package dbapply

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/brindlebyte/schemawright/destructive"
	"github.com/brindlebyte/schemawright/schema"
)

// driverNames maps a schemawright dialect to the database/sql driver name
// registered by the blank imports above.
var driverNames = map[schema.Dialect]string{
	schema.PostgreSQL: "postgres",
	schema.MySQL:      "mysql",
	schema.SQLite:     "sqlite3",
}

// Options configures one Applier.
type Options struct {
	Dialect          schema.Dialect
	DSN              string
	Transaction      bool
	DryRun           bool
	SkipConfirmation bool
	Out              io.Writer
	In               io.Reader
}

// Applier connects to a target database and executes migration SQL
// against it, honoring the destructive-change gating the pipeline's
// caller is responsible for (§4.F.3): the caller passes the already-
// decided report in so a refusal never reaches here silently.
type Applier struct {
	db      *sql.DB
	options Options
	out     io.Writer
	in      io.Reader
}

// NewApplier returns an Applier for the given options.
func NewApplier(options Options) *Applier {
	out := options.Out
	if out == nil {
		out = io.Discard
	}
	in := options.In
	if in == nil {
		in = strings.NewReader("")
	}
	return &Applier{options: options, out: out, in: in}
}

// Connect opens and pings the target database.
func (a *Applier) Connect(ctx context.Context) error {
	driverName, ok := driverNames[a.options.Dialect]
	if !ok {
		return fmt.Errorf("dbapply: unsupported dialect %q", a.options.Dialect)
	}

	db, err := sql.Open(driverName, a.options.DSN)
	if err != nil {
		return fmt.Errorf("dbapply: open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("dbapply: ping database: %w", err)
	}
	a.db = db
	return nil
}

// Close closes the underlying connection, if open.
func (a *Applier) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// SplitStatements splits a migration body on the `;\n\n` separator §6.3
// guarantees between statements, trimming the trailing blank entry a
// final `;\n\n`-terminated body would otherwise leave behind.
func SplitStatements(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	parts := strings.Split(body, ";\n\n")
	statements := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasSuffix(p, ";") {
			p += ";"
		}
		statements = append(statements, p)
	}
	return statements
}

// Run executes every statement in body in order. If report carries
// destructive changes and allowDestructive is false, Run refuses before
// touching the connection — mirroring the pipeline's own refusal so a
// caller that forgot to gate earlier still can't apply destructively.
func (a *Applier) Run(ctx context.Context, body string, report *destructive.Report, allowDestructive bool) error {
	if report != nil && report.HasDestructiveChanges() && !allowDestructive {
		return fmt.Errorf("dbapply: refusing to apply: diff contains destructive changes and allow_destructive is false")
	}

	statements := SplitStatements(body)
	if len(statements) == 0 {
		fmt.Fprintln(a.out, "no SQL statements to apply")
		return nil
	}

	if a.options.DryRun {
		for i, stmt := range statements {
			fmt.Fprintf(a.out, "  [%d/%d] (dry run) %s\n", i+1, len(statements), truncate(stmt, 80))
		}
		return nil
	}

	for i, stmt := range statements {
		fmt.Fprintf(a.out, "  [%d/%d] %s\n", i+1, len(statements), truncate(stmt, 80))
	}
	if !a.options.SkipConfirmation && !a.askConfirmation() {
		fmt.Fprintln(a.out, "migration canceled")
		return nil
	}

	if a.options.Transaction {
		return a.runInTransaction(ctx, statements)
	}
	return a.runWithoutTransaction(ctx, statements)
}

func (a *Applier) askConfirmation() bool {
	fmt.Fprint(a.out, "\nExecute? [y/n]: ")
	reader := bufio.NewReader(a.in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func (a *Applier) runInTransaction(ctx context.Context, statements []string) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("dbapply: begin transaction: %w", err)
	}

	for i, stmt := range statements {
		start := time.Now()
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("dbapply: statement %d failed: %w; rollback also failed: %w", i+1, err, rbErr)
			}
			return fmt.Errorf("dbapply: statement %d failed (rolled back): %w\n  statement: %s", i+1, err, truncate(stmt, 80))
		}
		fmt.Fprintf(a.out, "  [%d/%d] OK (%.2fs): %s\n", i+1, len(statements), time.Since(start).Seconds(), truncate(stmt, 50))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dbapply: commit transaction: %w", err)
	}
	return nil
}

func (a *Applier) runWithoutTransaction(ctx context.Context, statements []string) error {
	applied := 0
	for i, stmt := range statements {
		start := time.Now()
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("dbapply: statement %d failed: %w\n  statement: %s\n  %d statements already applied and cannot be automatically rolled back",
				i+1, err, truncate(stmt, 80), applied)
		}
		fmt.Fprintf(a.out, "  [%d/%d] OK (%.2fs): %s\n", i+1, len(statements), time.Since(start).Seconds(), truncate(stmt, 50))
		applied++
	}
	return nil
}

func truncate(stmt string, maxLen int) string {
	stmt = strings.TrimSpace(stmt)
	if len(stmt) <= maxLen {
		return stmt
	}
	return stmt[:maxLen-3] + "..."
}
