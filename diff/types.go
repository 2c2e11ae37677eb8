// Package diff computes the structural delta between two schema
// snapshots: added/removed/modified tables and enums, with user-annotated
// renames collapsed into a single RenamedColumn rather than an add+remove
// pair.
package diff

import "github.com/brindlebyte/schemawright/schema"

// SchemaDiff is the output of comparing an old schema against a new one.
type SchemaDiff struct {
	AddedTables    []*schema.Table
	RemovedTables  []string
	ModifiedTables []*TableDiff

	AddedEnums    []*schema.EnumDefinition
	RemovedEnums  []string
	ModifiedEnums []*EnumDiff

	// EnumRecreateAllowed is copied verbatim from the new schema.
	EnumRecreateAllowed bool
}

// IsEmpty reports whether the diff carries no changes at all.
func (d *SchemaDiff) IsEmpty() bool {
	return len(d.AddedTables) == 0 && len(d.RemovedTables) == 0 && len(d.ModifiedTables) == 0 &&
		len(d.AddedEnums) == 0 && len(d.RemovedEnums) == 0 && len(d.ModifiedEnums) == 0
}

// TableDiff is the per-table delta for a table present in both schemas.
type TableDiff struct {
	Name string

	AddedColumns    []*schema.Column
	RemovedColumns  []*schema.Column
	ModifiedColumns []*ColumnDiff
	RenamedColumns  []*RenamedColumn

	AddedIndexes   []*schema.Index
	RemovedIndexes []*schema.Index

	AddedConstraints   []schema.Constraint
	RemovedConstraints []schema.Constraint
}

// IsEmpty reports whether this table has no recorded changes.
func (td *TableDiff) IsEmpty() bool {
	return len(td.AddedColumns) == 0 && len(td.RemovedColumns) == 0 &&
		len(td.ModifiedColumns) == 0 && len(td.RenamedColumns) == 0 &&
		len(td.AddedIndexes) == 0 && len(td.RemovedIndexes) == 0 &&
		len(td.AddedConstraints) == 0 && len(td.RemovedConstraints) == 0
}

// ColumnChangeKind names which attribute of a column differs between the
// old and new schema.
type ColumnChangeKind string

const (
	TypeChanged          ColumnChangeKind = "TypeChanged"
	NullableChanged      ColumnChangeKind = "NullableChanged"
	DefaultValueChanged  ColumnChangeKind = "DefaultValueChanged"
	AutoIncrementChanged ColumnChangeKind = "AutoIncrementChanged"
)

// ColumnChange is one differing attribute within a ColumnDiff. OldType and
// NewType are populated only when Kind is TypeChanged.
type ColumnChange struct {
	Kind    ColumnChangeKind
	OldType schema.ColumnType
	NewType schema.ColumnType
}

// ColumnDiff describes every differing attribute of one column present
// (and not renamed) on both sides of the comparison.
type ColumnDiff struct {
	ColumnName string
	OldColumn  *schema.Column
	NewColumn  *schema.Column
	Changes    []ColumnChange
}

// HasTypeChange reports whether this diff includes a TypeChanged entry.
func (cd *ColumnDiff) HasTypeChange() bool {
	return cd.HasChange(TypeChanged)
}

// HasChange reports whether this diff includes an entry of the given kind.
func (cd *ColumnDiff) HasChange(kind ColumnChangeKind) bool {
	for _, c := range cd.Changes {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// RenamedColumn is a column whose new-schema renamed_from annotation
// resolved to a column in the old schema. The new column is authoritative
// for display; OldColumn is retained so callers can detect an
// accompanying type change.
type RenamedColumn struct {
	OldName   string
	NewName   string
	OldColumn *schema.Column
	NewColumn *schema.Column
}

// TypeChange reports whether the rename was accompanied by a type change,
// and if so the TypeChanged ColumnChange describing it. Other differing
// attributes are not reported.
func (r *RenamedColumn) TypeChange() (ColumnChange, bool) {
	if r.OldColumn == nil || r.NewColumn == nil {
		return ColumnChange{}, false
	}
	if r.OldColumn.Type.Equal(r.NewColumn.Type) {
		return ColumnChange{}, false
	}
	return ColumnChange{Kind: TypeChanged, OldType: r.OldColumn.Type, NewType: r.NewColumn.Type}, true
}

// EnumChangeKind classifies how an enum's value set changed.
type EnumChangeKind string

const (
	// AddOnly holds when the old values are a prefix-preserving
	// subsequence of the new values and nothing was removed.
	AddOnly EnumChangeKind = "AddOnly"
	// Recreate holds whenever AddOnly does not: any removal or reorder
	// forces dropping and recreating the type.
	Recreate EnumChangeKind = "Recreate"
)

// EnumDiff describes a changed enum definition.
type EnumDiff struct {
	EnumName     string
	OldValues    []string
	NewValues    []string
	AddedValues  []string
	RemovedValues []string
	ChangeKind   EnumChangeKind
	Columns      []schema.ColumnRef
}
