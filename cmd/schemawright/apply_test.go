package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindlebyte/schemawright/destructive"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/meta"
	"github.com/brindlebyte/schemawright/migrationfs"
	"github.com/brindlebyte/schemawright/schema"
)

func emptySchema() *schema.Schema {
	return schema.NewSchema()
}

func TestResolveMigrationDefaultsToLatest(t *testing.T) {
	dir := t.TempDir()
	store := migrationfs.NewStore(dir)

	for _, v := range []string{"20260101000000", "20260301000000"} {
		_, err := store.Write(migrationfs.NewMigration(v, "m"), "", "", mustBuildMeta(t, v), emptySchema())
		require.NoError(t, err)
	}

	m, err := resolveMigration(store, "")
	require.NoError(t, err)
	assert.Equal(t, "20260301000000", m.Version)

	m, err = resolveMigration(store, "20260101000000")
	require.NoError(t, err)
	assert.Equal(t, "20260101000000", m.Version)

	_, err = resolveMigration(store, "nonexistent")
	assert.Error(t, err)
}

func TestReportFromMetaReflectsDestructiveChanges(t *testing.T) {
	report := &destructive.Report{TablesDropped: []string{"legacy"}}
	md, err := meta.Build("20260101000000", "drop legacy", "postgresql", emptySchema(), report)
	require.NoError(t, err)

	got := reportFromMeta(md)
	assert.True(t, got.HasDestructiveChanges())
	assert.Equal(t, []string{"legacy"}, got.TablesDropped)
}

func mustBuildMeta(t *testing.T, version string) *meta.Metadata {
	t.Helper()
	md, err := meta.Build(version, "m", "postgresql", emptySchema(), destructive.Detect(&diff.SchemaDiff{}))
	require.NoError(t, err)
	return md
}
