package diff

import (
	"fmt"

	"github.com/brindlebyte/schemawright/diag"
	"github.com/brindlebyte/schemawright/schema"
)

// compareTable computes the TableDiff between oldT and newT, which share a
// name. Warnings surface rename annotations that did not resolve.
func compareTable(oldT, newT *schema.Table) (*TableDiff, []diag.Warning) {
	td := &TableDiff{Name: newT.Name}
	var warnings []diag.Warning

	oldCols := mapColumnsByName(oldT.Columns)
	newCols := mapColumnsByName(newT.Columns)

	consumedOld := map[string]bool{}
	consumedNew := map[string]bool{}

	// a. Rename resolution first, in the new table's authored order.
	for _, nc := range newT.Columns {
		if nc.RenamedFrom == "" {
			continue
		}
		oc, ok := oldCols[nc.RenamedFrom]
		if !ok {
			warnings = append(warnings, diag.Warning{
				Kind:    diag.OldColumnNotFound,
				Message: fmt.Sprintf("column %q declares renamed_from %q, which does not exist in the previous schema", nc.Name, nc.RenamedFrom),
				Location: &diag.Location{Table: newT.Name, Column: nc.Name},
			})
			continue
		}
		td.RenamedColumns = append(td.RenamedColumns, &RenamedColumn{
			OldName:   nc.RenamedFrom,
			NewName:   nc.Name,
			OldColumn: oc,
			NewColumn: nc,
		})
		consumedOld[oc.Name] = true
		consumedNew[nc.Name] = true
	}

	// b. Additions.
	for _, nc := range newT.Columns {
		if consumedNew[nc.Name] {
			continue
		}
		if _, ok := oldCols[nc.Name]; !ok {
			td.AddedColumns = append(td.AddedColumns, nc)
		}
	}

	// c. Removals.
	for _, oc := range oldT.Columns {
		if consumedOld[oc.Name] {
			continue
		}
		if _, ok := newCols[oc.Name]; !ok {
			td.RemovedColumns = append(td.RemovedColumns, oc)
		}
	}

	// d. Modifications.
	for _, nc := range newT.Columns {
		if consumedNew[nc.Name] {
			continue
		}
		oc, ok := oldCols[nc.Name]
		if !ok {
			continue
		}
		changes := columnChanges(oc, nc)
		if len(changes) == 0 {
			continue
		}
		td.ModifiedColumns = append(td.ModifiedColumns, &ColumnDiff{
			ColumnName: nc.Name,
			OldColumn:  oc,
			NewColumn:  nc,
			Changes:    changes,
		})
	}

	// e. Indexes, by name.
	oldIdx := mapIndexesByName(oldT.Indexes)
	newIdx := mapIndexesByName(newT.Indexes)
	for _, ni := range newT.Indexes {
		if _, ok := oldIdx[ni.Name]; !ok {
			td.AddedIndexes = append(td.AddedIndexes, ni)
		}
	}
	for _, oi := range oldT.Indexes {
		if _, ok := newIdx[oi.Name]; !ok {
			td.RemovedIndexes = append(td.RemovedIndexes, oi)
		}
	}

	// f. Constraints, by structural value equality.
	for _, nc := range newT.Constraints {
		if !containsConstraint(oldT.Constraints, nc) {
			td.AddedConstraints = append(td.AddedConstraints, nc)
		}
	}
	for _, oc := range oldT.Constraints {
		if !containsConstraint(newT.Constraints, oc) {
			td.RemovedConstraints = append(td.RemovedConstraints, oc)
		}
	}

	return td, warnings
}
