// Package destructive projects a schema diff into a report enumerating
// every change that discards data: dropped tables, dropped columns,
// renamed columns, dropped enums, and enum recreations. The projection is
// pure and idempotent — the same diff always yields the same report.
package destructive

import "github.com/brindlebyte/schemawright/diff"

// ColumnsDropped names the columns dropped from one table.
type ColumnsDropped struct {
	Table   string
	Columns []string
}

// ColumnRenamed names a column rename, which the core counts as a
// destructive change.
type ColumnRenamed struct {
	Table string
	Old   string
	New   string
}

// Report enumerates every destructive change in a SchemaDiff.
type Report struct {
	TablesDropped   []string
	ColumnsDropped  []ColumnsDropped
	ColumnsRenamed  []ColumnRenamed
	EnumsDropped    []string
	EnumsRecreated  []string
}

// HasDestructiveChanges reports whether any field of the report is
// non-empty.
func (r *Report) HasDestructiveChanges() bool {
	return len(r.TablesDropped) > 0 || len(r.ColumnsDropped) > 0 ||
		len(r.ColumnsRenamed) > 0 || len(r.EnumsDropped) > 0 || len(r.EnumsRecreated) > 0
}

// Detect projects d into a Report. It is a pure function of d: equal
// diffs always yield equal reports.
func Detect(d *diff.SchemaDiff) *Report {
	r := &Report{
		TablesDropped: append([]string(nil), d.RemovedTables...),
		EnumsDropped:  append([]string(nil), d.RemovedEnums...),
	}

	for _, td := range d.ModifiedTables {
		if len(td.RemovedColumns) > 0 {
			names := make([]string, 0, len(td.RemovedColumns))
			for _, c := range td.RemovedColumns {
				names = append(names, c.Name)
			}
			r.ColumnsDropped = append(r.ColumnsDropped, ColumnsDropped{Table: td.Name, Columns: names})
		}
		for _, rc := range td.RenamedColumns {
			r.ColumnsRenamed = append(r.ColumnsRenamed, ColumnRenamed{Table: td.Name, Old: rc.OldName, New: rc.NewName})
		}
	}

	for _, ed := range d.ModifiedEnums {
		if ed.ChangeKind == diff.Recreate {
			r.EnumsRecreated = append(r.EnumsRecreated, ed.EnumName)
		}
	}

	return r
}
