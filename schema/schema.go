// Package schema defines the value types that flow through the migration
// core: the schema snapshot a user authors, its tables, columns, indexes,
// and constraints, and the tagged-variant column type at the center of it
// all. Every type here is an immutable value once constructed; nothing in
// this package performs I/O, parsing, or mutation after construction.
package schema

// Schema is a single snapshot of a desired (or previously applied) database
// structure: a version marker, the tables and enums that make it up, and
// whether destructive enum changes are pre-approved for this snapshot.
type Schema struct {
	Version             string
	Tables              map[string]*Table
	Enums               map[string]*EnumDefinition
	EnumRecreateAllowed bool
}

// NewSchema returns an empty schema at version "1.0", the value used when a
// previous-schema snapshot is absent from the filesystem.
func NewSchema() *Schema {
	return &Schema{
		Version: "1.0",
		Tables:  map[string]*Table{},
		Enums:   map[string]*EnumDefinition{},
	}
}

// Table is one table definition: its columns in authored order, its
// indexes and constraints, and an optional previous name carried across a
// diff by a rename annotation.
type Table struct {
	Name        string
	Columns     []*Column
	Indexes     []*Index
	Constraints []Constraint
	RenamedFrom string
}

// ColumnByName returns the column named n, or nil if the table has none.
func (t *Table) ColumnByName(n string) *Column {
	for _, c := range t.Columns {
		if c.Name == n {
			return c
		}
	}
	return nil
}

// Column is a single column within a table.
type Column struct {
	Name          string
	Type          ColumnType
	Nullable      bool
	DefaultValue  *string
	AutoIncrement bool
	RenamedFrom   string
}

// Equal reports whether c and other describe the same column attributes,
// ignoring RenamedFrom (a diff-time annotation, not a structural property).
func (c *Column) Equal(other *Column) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Name != other.Name || !c.Type.Equal(other.Type) || c.Nullable != other.Nullable || c.AutoIncrement != other.AutoIncrement {
		return false
	}
	return stringPtrEqual(c.DefaultValue, other.DefaultValue)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Index is a named, ordered set of columns, optionally unique.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// EnumDefinition is a named, ordered set of enum values.
type EnumDefinition struct {
	Name   string
	Values []string
}

// ColumnRef names a (table, column) pair — used to enumerate the sites
// where an enum type is referenced.
type ColumnRef struct {
	Table  string
	Column string
}

// EnumColumnsReferencing scans every table's columns and returns, in
// deterministic (table, then column) authored order, every site where an
// Enum column type names enumName.
func EnumColumnsReferencing(tables map[string]*Table, tableNames []string, enumName string) []ColumnRef {
	var refs []ColumnRef
	for _, tname := range tableNames {
		t := tables[tname]
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			if e, ok := c.Type.(Enum); ok && e.Name == enumName {
				refs = append(refs, ColumnRef{Table: tname, Column: c.Name})
			}
		}
	}
	return refs
}
