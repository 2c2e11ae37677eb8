package diff

import (
	"github.com/brindlebyte/schemawright/diag"
	"github.com/brindlebyte/schemawright/schema"
)

// DetectDiffWithWarnings computes the structural delta between old and
// new, returning every warning accumulated along the way (principally
// unresolved renamed_from annotations).
func DetectDiffWithWarnings(old, new *schema.Schema) (*SchemaDiff, []diag.Warning) {
	d := &SchemaDiff{EnumRecreateAllowed: new.EnumRecreateAllowed}
	var warnings []diag.Warning

	for _, name := range sortedKeys(new.Enums) {
		if _, ok := old.Enums[name]; !ok {
			d.AddedEnums = append(d.AddedEnums, new.Enums[name])
		}
	}
	for _, name := range sortedKeys(old.Enums) {
		if _, ok := new.Enums[name]; !ok {
			d.RemovedEnums = append(d.RemovedEnums, name)
		}
	}
	for _, name := range sortedKeys(new.Enums) {
		oldEnum, ok := old.Enums[name]
		if !ok {
			continue
		}
		newEnum := new.Enums[name]
		if stringSliceEqual(oldEnum.Values, newEnum.Values) {
			continue
		}
		kind, added, removed := classifyEnumChange(oldEnum.Values, newEnum.Values)
		d.ModifiedEnums = append(d.ModifiedEnums, &EnumDiff{
			EnumName:      name,
			OldValues:     oldEnum.Values,
			NewValues:     newEnum.Values,
			AddedValues:   added,
			RemovedValues: removed,
			ChangeKind:    kind,
			Columns:       schema.EnumColumnsReferencing(new.Tables, sortedKeys(new.Tables), name),
		})
	}

	for _, name := range sortedKeys(new.Tables) {
		if _, ok := old.Tables[name]; !ok {
			d.AddedTables = append(d.AddedTables, new.Tables[name])
		}
	}
	for _, name := range sortedKeys(old.Tables) {
		if _, ok := new.Tables[name]; !ok {
			d.RemovedTables = append(d.RemovedTables, name)
		}
	}
	for _, name := range sortedKeys(new.Tables) {
		oldTable, ok := old.Tables[name]
		if !ok {
			continue
		}
		td, tableWarnings := compareTable(oldTable, new.Tables[name])
		warnings = append(warnings, tableWarnings...)
		if !td.IsEmpty() {
			d.ModifiedTables = append(d.ModifiedTables, td)
		}
	}

	return d, warnings
}

// DetectDiff is DetectDiffWithWarnings with warnings discarded.
func DetectDiff(old, new *schema.Schema) *SchemaDiff {
	d, _ := DetectDiffWithWarnings(old, new)
	return d
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
