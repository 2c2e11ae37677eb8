package destructive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleReport() *Report {
	return &Report{
		TablesDropped:  []string{"legacy"},
		ColumnsDropped: []ColumnsDropped{{Table: "products", Columns: []string{"legacy_field", "unused"}}},
		ColumnsRenamed: []ColumnRenamed{{Table: "orders", Old: "old_status", New: "status"}},
		EnumsDropped:   []string{"old_status"},
		EnumsRecreated: []string{"priority"},
	}
}

func TestFormatRefusalIncludesGroupedChangesAndActions(t *testing.T) {
	out := FormatRefusal(sampleReport(), "schemawright generate")

	assert.Contains(t, out, "destructive changes detected")
	assert.Contains(t, out, "tables to be dropped: legacy")
	assert.Contains(t, out, "columns to be dropped:")
	assert.Contains(t, out, "products: legacy_field, unused")
	assert.Contains(t, out, "columns to be renamed:")
	assert.Contains(t, out, "orders: old_status -> status")
	assert.Contains(t, out, "enums to be dropped: old_status")
	assert.Contains(t, out, "enums to be recreated: priority")
	assert.Contains(t, out, "review the changes: schemawright generate --dry-run")
	assert.Contains(t, out, "allow destructive changes: schemawright generate --allow-destructive")
}

func TestFormatWarningIncludesSummary(t *testing.T) {
	out := FormatWarning(sampleReport())

	assert.Contains(t, out, "warning: this migration contains destructive changes")
	assert.Contains(t, out, "tables to be dropped: legacy")
	assert.Contains(t, out, "products: legacy_field, unused")
}

func TestFormatWarningEmptyReport(t *testing.T) {
	out := FormatWarning(&Report{})
	assert.Contains(t, out, "no destructive changes were listed")
}
