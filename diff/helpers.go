package diff

import (
	"sort"

	"github.com/brindlebyte/schemawright/schema"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapColumnsByName(cols []*schema.Column) map[string]*schema.Column {
	m := make(map[string]*schema.Column, len(cols))
	for _, c := range cols {
		m[c.Name] = c
	}
	return m
}

func mapIndexesByName(idxs []*schema.Index) map[string]*schema.Index {
	m := make(map[string]*schema.Index, len(idxs))
	for _, i := range idxs {
		m[i.Name] = i
	}
	return m
}

func containsConstraint(haystack []schema.Constraint, needle schema.Constraint) bool {
	for _, c := range haystack {
		if c.Equal(needle) {
			return true
		}
	}
	return false
}

// columnChanges enumerates every differing attribute between oc and nc in
// the fixed order: type, nullable, default, auto_increment.
func columnChanges(oc, nc *schema.Column) []ColumnChange {
	var changes []ColumnChange
	if !oc.Type.Equal(nc.Type) {
		changes = append(changes, ColumnChange{Kind: TypeChanged, OldType: oc.Type, NewType: nc.Type})
	}
	if oc.Nullable != nc.Nullable {
		changes = append(changes, ColumnChange{Kind: NullableChanged})
	}
	if !stringPtrEqual(oc.DefaultValue, nc.DefaultValue) {
		changes = append(changes, ColumnChange{Kind: DefaultValueChanged})
	}
	if oc.AutoIncrement != nc.AutoIncrement {
		changes = append(changes, ColumnChange{Kind: AutoIncrementChanged})
	}
	return changes
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// isPrefixSubsequence reports whether old appears, in order, as a
// (not necessarily contiguous) subsequence of new.
func isPrefixSubsequence(old, new []string) bool {
	i := 0
	for _, v := range new {
		if i < len(old) && old[i] == v {
			i++
		}
	}
	return i == len(old)
}

func stringSetDifference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	var out []string
	for _, v := range a {
		if !inB[v] {
			out = append(out, v)
		}
	}
	return out
}
