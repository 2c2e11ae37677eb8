package destructive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brindlebyte/schemawright/diff"
)

func TestDetectEmptyDiffYieldsEmptyReport(t *testing.T) {
	r := Detect(&diff.SchemaDiff{})
	assert.False(t, r.HasDestructiveChanges())
}

func TestDetectProjectsRemovedTables(t *testing.T) {
	d := &diff.SchemaDiff{RemovedTables: []string{"legacy_orders"}}
	r := Detect(d)
	assert.Equal(t, []string{"legacy_orders"}, r.TablesDropped)
	assert.True(t, r.HasDestructiveChanges())
}

func TestDetectProjectsRenamedColumnsAsDestructive(t *testing.T) {
	d := &diff.SchemaDiff{
		ModifiedTables: []*diff.TableDiff{
			{Name: "users", RenamedColumns: []*diff.RenamedColumn{{OldName: "age", NewName: "age_years"}}},
		},
	}
	r := Detect(d)
	assert.Equal(t, []ColumnRenamed{{Table: "users", Old: "age", New: "age_years"}}, r.ColumnsRenamed)
}

func TestDetectProjectsRecreatedEnumsOnly(t *testing.T) {
	d := &diff.SchemaDiff{
		ModifiedEnums: []*diff.EnumDiff{
			{EnumName: "status", ChangeKind: diff.AddOnly},
			{EnumName: "role", ChangeKind: diff.Recreate},
		},
	}
	r := Detect(d)
	assert.Equal(t, []string{"role"}, r.EnumsRecreated)
}

func TestDetectIsPureAndStable(t *testing.T) {
	d := &diff.SchemaDiff{RemovedTables: []string{"a"}, RemovedEnums: []string{"b"}}
	r1 := Detect(d)
	r2 := Detect(d)
	assert.Equal(t, r1, r2)
}
