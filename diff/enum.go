package diff

// classifyEnumChange compares old and new enum value sequences and
// returns the EnumDiff fields describing the change.
func classifyEnumChange(oldValues, newValues []string) (kind EnumChangeKind, added, removed []string) {
	removed = stringSetDifference(oldValues, newValues)
	added = stringSetDifference(newValues, oldValues)

	if len(removed) == 0 && isPrefixSubsequence(oldValues, newValues) {
		kind = AddOnly
	} else {
		kind = Recreate
	}
	return kind, added, removed
}
