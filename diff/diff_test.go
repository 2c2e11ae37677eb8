package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindlebyte/schemawright/schema"
)

func schemaWithUsersTable(cols ...*schema.Column) *schema.Schema {
	s := schema.NewSchema()
	s.Tables["users"] = &schema.Table{Name: "users", Columns: cols}
	return s
}

func TestDetectDiffIsEmptyForIdenticalSchemas(t *testing.T) {
	s := schemaWithUsersTable(
		&schema.Column{Name: "id", Type: schema.Integer{}},
		&schema.Column{Name: "email", Type: schema.Varchar{Length: 255}},
	)

	d := DetectDiff(s, s)
	assert.True(t, d.IsEmpty())
}

func TestDetectDiffAddedTable(t *testing.T) {
	oldS := schema.NewSchema()
	newS := schemaWithUsersTable(&schema.Column{Name: "id", Type: schema.Integer{}})

	d := DetectDiff(oldS, newS)
	require.Len(t, d.AddedTables, 1)
	assert.Equal(t, "users", d.AddedTables[0].Name)
	assert.Empty(t, d.RemovedTables)
	assert.Empty(t, d.ModifiedTables)
}

func TestDetectDiffRemovedTable(t *testing.T) {
	oldS := schemaWithUsersTable(&schema.Column{Name: "id", Type: schema.Integer{}})
	newS := schema.NewSchema()

	d := DetectDiff(oldS, newS)
	require.Len(t, d.RemovedTables, 1)
	assert.Equal(t, "users", d.RemovedTables[0])
}

func TestDetectDiffRenameCollapsesIntoSingleRenamedColumn(t *testing.T) {
	oldS := schemaWithUsersTable(&schema.Column{Name: "age", Type: schema.Integer{}})
	newS := schemaWithUsersTable(&schema.Column{Name: "age_years", Type: schema.Integer{}, RenamedFrom: "age"})

	d := DetectDiff(oldS, newS)
	require.Len(t, d.ModifiedTables, 1)
	td := d.ModifiedTables[0]
	require.Len(t, td.RenamedColumns, 1)
	assert.Equal(t, "age", td.RenamedColumns[0].OldName)
	assert.Equal(t, "age_years", td.RenamedColumns[0].NewName)
	assert.Empty(t, td.AddedColumns)
	assert.Empty(t, td.RemovedColumns)
}

func TestDetectDiffRenameWithTypeChangeIsDetectable(t *testing.T) {
	oldS := schemaWithUsersTable(&schema.Column{Name: "age", Type: schema.Integer{}})
	newS := schemaWithUsersTable(&schema.Column{
		Name: "age_years", Type: schema.Varchar{Length: 50}, RenamedFrom: "age",
	})

	d := DetectDiff(oldS, newS)
	rc := d.ModifiedTables[0].RenamedColumns[0]
	change, ok := rc.TypeChange()
	require.True(t, ok)
	assert.Equal(t, TypeChanged, change.Kind)
	assert.True(t, change.NewType.Equal(schema.Varchar{Length: 50}))
}

func TestDetectDiffUnresolvedRenameEmitsWarningAndAddition(t *testing.T) {
	oldS := schema.NewSchema()
	oldS.Tables["users"] = &schema.Table{Name: "users"}
	newS := schemaWithUsersTable(&schema.Column{Name: "age_years", Type: schema.Integer{}, RenamedFrom: "age"})

	d, warnings := DetectDiffWithWarnings(oldS, newS)
	require.Len(t, warnings, 1)
	assert.Equal(t, "OldColumnNotFound", string(warnings[0].Kind))
	require.Len(t, d.ModifiedTables, 1)
	assert.Len(t, d.ModifiedTables[0].AddedColumns, 1)
	assert.Empty(t, d.ModifiedTables[0].RenamedColumns)
}

func TestDetectDiffModifiedColumnEnumeratesChanges(t *testing.T) {
	oldS := schemaWithUsersTable(&schema.Column{Name: "id", Type: schema.Integer{}, Nullable: false})
	eight := uint8(8)
	newS := schemaWithUsersTable(&schema.Column{Name: "id", Type: schema.Integer{Precision: &eight}, Nullable: true})

	d := DetectDiff(oldS, newS)
	require.Len(t, d.ModifiedTables[0].ModifiedColumns, 1)
	cd := d.ModifiedTables[0].ModifiedColumns[0]
	require.Len(t, cd.Changes, 2)
	assert.Equal(t, TypeChanged, cd.Changes[0].Kind)
	assert.Equal(t, NullableChanged, cd.Changes[1].Kind)
}

func TestDetectDiffConstraintsByStructuralEquality(t *testing.T) {
	oldS := schema.NewSchema()
	oldS.Tables["users"] = &schema.Table{
		Name:        "users",
		Columns:     []*schema.Column{{Name: "id", Type: schema.Integer{}}},
		Constraints: []schema.Constraint{schema.Unique{Columns: []string{"id"}}},
	}
	newS := schema.NewSchema()
	newS.Tables["users"] = &schema.Table{
		Name:        "users",
		Columns:     []*schema.Column{{Name: "id", Type: schema.Integer{}}},
		Constraints: []schema.Constraint{schema.PrimaryKey{Columns: []string{"id"}}},
	}

	d := DetectDiff(oldS, newS)
	td := d.ModifiedTables[0]
	require.Len(t, td.AddedConstraints, 1)
	require.Len(t, td.RemovedConstraints, 1)
}

func TestEnumDiffAddOnlyClassification(t *testing.T) {
	oldS := schema.NewSchema()
	oldS.Enums["status"] = &schema.EnumDefinition{Name: "status", Values: []string{"active", "inactive"}}
	newS := schema.NewSchema()
	newS.Enums["status"] = &schema.EnumDefinition{Name: "status", Values: []string{"active", "inactive", "suspended"}}

	d := DetectDiff(oldS, newS)
	require.Len(t, d.ModifiedEnums, 1)
	assert.Equal(t, AddOnly, d.ModifiedEnums[0].ChangeKind)
	assert.Equal(t, []string{"suspended"}, d.ModifiedEnums[0].AddedValues)
}

func TestEnumDiffRemovalForcesRecreate(t *testing.T) {
	oldS := schema.NewSchema()
	oldS.Enums["status"] = &schema.EnumDefinition{Name: "status", Values: []string{"active", "inactive"}}
	newS := schema.NewSchema()
	newS.Enums["status"] = &schema.EnumDefinition{Name: "status", Values: []string{"active"}}

	d := DetectDiff(oldS, newS)
	assert.Equal(t, Recreate, d.ModifiedEnums[0].ChangeKind)
	assert.Equal(t, []string{"inactive"}, d.ModifiedEnums[0].RemovedValues)
}

func TestEnumDiffCollectsReferencingColumns(t *testing.T) {
	oldS := schema.NewSchema()
	oldS.Enums["status"] = &schema.EnumDefinition{Name: "status", Values: []string{"active"}}
	newS := schema.NewSchema()
	newS.Enums["status"] = &schema.EnumDefinition{Name: "status", Values: []string{"active", "inactive"}}
	newS.Tables["users"] = &schema.Table{
		Name:    "users",
		Columns: []*schema.Column{{Name: "status", Type: schema.Enum{Name: "status"}}},
	}

	d := DetectDiff(oldS, newS)
	assert.Equal(t, []schema.ColumnRef{{Table: "users", Column: "status"}}, d.ModifiedEnums[0].Columns)
}
