package dbapply

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindlebyte/schemawright/destructive"
)

func TestSplitStatements(t *testing.T) {
	body := "CREATE TABLE users (id INTEGER);\n\nCREATE TABLE orders (id INTEGER);"
	got := SplitStatements(body)
	require.Len(t, got, 2)
	assert.Equal(t, "CREATE TABLE users (id INTEGER);", got[0])
	assert.Equal(t, "CREATE TABLE orders (id INTEGER);", got[1])
}

func TestSplitStatementsEmptyBody(t *testing.T) {
	assert.Empty(t, SplitStatements(""))
	assert.Empty(t, SplitStatements("   \n  "))
}

func TestSplitStatementsAddsMissingTerminator(t *testing.T) {
	got := SplitStatements("CREATE TABLE users (id INTEGER)")
	require.Len(t, got, 1)
	assert.Equal(t, "CREATE TABLE users (id INTEGER);", got[0])
}

func TestRunRefusesDestructiveWithoutAllow(t *testing.T) {
	a := NewApplier(Options{})
	report := &destructive.Report{TablesDropped: []string{"legacy"}}

	err := a.Run(context.Background(), "DROP TABLE legacy;", report, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destructive")
}

func TestRunDryRunWithAllowDestructiveDoesNotExecute(t *testing.T) {
	a := NewApplier(Options{DryRun: true})
	report := &destructive.Report{TablesDropped: []string{"legacy"}}

	// DryRun alone does not bypass the gate; allowDestructive still must
	// be set explicitly. This differs from the pipeline's CheckDestructive,
	// where dryRun on its own also bypasses the refusal.
	err := a.Run(context.Background(), "DROP TABLE legacy;", report, true)
	require.NoError(t, err)
}

func TestRunNoStatementsIsNoop(t *testing.T) {
	a := NewApplier(Options{})
	err := a.Run(context.Background(), "", nil, false)
	require.NoError(t, err)
}

func TestRunDeclinedConfirmationDoesNotExecute(t *testing.T) {
	a := NewApplier(Options{In: strings.NewReader("n\n")})

	// No Connect call precedes this: if the decline didn't short-circuit
	// before reaching the database, this would panic on a nil *sql.DB.
	err := a.Run(context.Background(), "CREATE TABLE users (id INTEGER);", nil, false)
	require.NoError(t, err)
}

func TestAskConfirmationAcceptsYAndYes(t *testing.T) {
	for _, in := range []string{"y\n", "Y\n", "yes\n", "YES\n"} {
		var out bytes.Buffer
		a := NewApplier(Options{In: strings.NewReader(in), Out: &out})
		assert.True(t, a.askConfirmation(), "input %q should confirm", in)
	}
}

func TestAskConfirmationRejectsAnythingElse(t *testing.T) {
	for _, in := range []string{"n\n", "\n", "maybe\n"} {
		var out bytes.Buffer
		a := NewApplier(Options{In: strings.NewReader(in), Out: &out})
		assert.False(t, a.askConfirmation(), "input %q should not confirm", in)
	}
}
