// Package typecheck validates that a column's type change is legal for a
// target dialect: it applies the dialect's own constraints first, then
// the type-category lattice, then warns on possible precision loss. It
// never inspects a diff's non-type attributes.
package typecheck

import (
	"fmt"

	"github.com/brindlebyte/schemawright/diag"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
	"github.com/brindlebyte/schemawright/typecategory"
)

// ValidateTypeChanges inspects every ColumnDiff in diffs that carries a
// TypeChanged entry and accumulates errors and warnings for table under
// dialect. Diffs with no type change are skipped entirely.
func ValidateTypeChanges(table string, diffs []*diff.ColumnDiff, dialect schema.Dialect) diag.ValidationResult {
	var result diag.ValidationResult

	for _, cd := range diffs {
		change, ok := typeChange(cd)
		if !ok {
			continue
		}
		loc := &diag.Location{Table: table, Column: cd.ColumnName}

		if err, ok := dialectConstraintError(change.OldType, change.NewType, dialect, loc); ok {
			result.Errors = append(result.Errors, err)
			continue
		}

		switch typecategory.ConversionResult(change.OldType, change.NewType) {
		case typecategory.Error:
			result.Errors = append(result.Errors, diag.ValidationError{
				Kind:       diag.TypeConversion,
				Message:    fmt.Sprintf("cannot convert column %q from %s to %s", cd.ColumnName, describe(change.OldType), describe(change.NewType)),
				Location:   loc,
				Suggestion: "use TEXT as an intermediate type",
			})
			continue
		case typecategory.Warning:
			result.Warnings = append(result.Warnings, diag.Warning{
				Kind:     diag.DataLoss,
				Message:  fmt.Sprintf("converting column %q from %s to %s may fail at runtime", cd.ColumnName, describe(change.OldType), describe(change.NewType)),
				Location: loc,
			})
		}

		result.Warnings = append(result.Warnings, precisionWarnings(cd.ColumnName, change.OldType, change.NewType, loc)...)
	}

	return result
}

func typeChange(cd *diff.ColumnDiff) (diff.ColumnChange, bool) {
	for _, c := range cd.Changes {
		if c.Kind == diff.TypeChanged {
			return c, true
		}
	}
	return diff.ColumnChange{}, false
}

// dialectConstraintError applies dialect-specific type-target
// restrictions that are stricter than the general category lattice.
func dialectConstraintError(from, to schema.ColumnType, dialect schema.Dialect, loc *diag.Location) (diag.ValidationError, bool) {
	_, toJSONB := to.(schema.JSONB)
	_, toUUID := to.(schema.UUID)
	_, fromUUID := from.(schema.UUID)

	switch dialect {
	case schema.MySQL:
		if toJSONB {
			return dialectError(dialect, "MySQL has no JSONB type", loc), true
		}
		if toUUID && !fromUUID {
			return dialectError(dialect, "MySQL has no native UUID type", loc), true
		}
	case schema.SQLite:
		if toJSONB {
			return dialectError(dialect, "SQLite has no JSONB type", loc), true
		}
		if toUUID && !fromUUID {
			return dialectError(dialect, "SQLite has no native UUID type", loc), true
		}
	case schema.PostgreSQL:
		// No extra constraints beyond the category lattice.
	}
	return diag.ValidationError{}, false
}

func dialectError(dialect schema.Dialect, reason string, loc *diag.Location) diag.ValidationError {
	return diag.ValidationError{
		Kind:       diag.DialectConstraint,
		Message:    fmt.Sprintf("%s: %s", dialect, reason),
		Location:   loc,
		Suggestion: "use TEXT as an intermediate type",
	}
}

// precisionWarnings implements the size/precision-loss checks from the
// design: VARCHAR/CHAR shrink, DECIMAL precision or scale shrink, and
// INTEGER size shrink.
func precisionWarnings(column string, from, to schema.ColumnType, loc *diag.Location) []diag.Warning {
	var warnings []diag.Warning

	switch o := from.(type) {
	case schema.Varchar:
		if n, ok := to.(schema.Varchar); ok && n.Length < o.Length {
			warnings = append(warnings, truncationWarning(column, loc))
		}
	case schema.Char:
		if n, ok := to.(schema.Char); ok && n.Length < o.Length {
			warnings = append(warnings, truncationWarning(column, loc))
		}
	case schema.Decimal:
		if n, ok := to.(schema.Decimal); ok && (n.Precision < o.Precision || n.Scale < o.Scale) {
			warnings = append(warnings, diag.Warning{
				Kind:     diag.PrecisionLoss,
				Message:  fmt.Sprintf("narrowing column %q may cause precision loss", column),
				Location: loc,
			})
		}
	case schema.Integer:
		if n, ok := to.(schema.Integer); ok && integerShrinks(o.Precision, n.Precision) {
			warnings = append(warnings, diag.Warning{
				Kind:     diag.PrecisionLoss,
				Message:  fmt.Sprintf("narrowing column %q may cause overflow", column),
				Location: loc,
			})
		}
	}

	return warnings
}

func truncationWarning(column string, loc *diag.Location) diag.Warning {
	return diag.Warning{
		Kind:     diag.PrecisionLoss,
		Message:  fmt.Sprintf("narrowing column %q may cause data truncation", column),
		Location: loc,
	}
}

// integerShrinks reports whether the integer precision class narrows:
// 8->4, 8->unset, 4->2, unset->2.
func integerShrinks(old, new *uint8) bool {
	rank := func(p *uint8) int {
		if p == nil {
			return 4
		}
		switch *p {
		case 2:
			return 2
		case 8:
			return 8
		default:
			return 4
		}
	}
	oldRank, newRank := rank(old), rank(new)
	return newRank < oldRank
}

func describe(t schema.ColumnType) string {
	switch v := t.(type) {
	case schema.Integer:
		return "INTEGER"
	case schema.Varchar:
		return "VARCHAR"
	case schema.Char:
		return "CHAR"
	case schema.Text:
		return "TEXT"
	case schema.Decimal:
		return "DECIMAL"
	case schema.Float:
		return "FLOAT"
	case schema.Double:
		return "DOUBLE"
	case schema.Boolean:
		return "BOOLEAN"
	case schema.Date:
		return "DATE"
	case schema.Time:
		return "TIME"
	case schema.Timestamp:
		return "TIMESTAMP"
	case schema.JSON:
		return "JSON"
	case schema.JSONB:
		return "JSONB"
	case schema.Blob:
		return "BLOB"
	case schema.UUID:
		return "UUID"
	case schema.Enum:
		return fmt.Sprintf("ENUM(%s)", v.Name)
	case schema.DialectSpecific:
		return v.Kind
	default:
		return "UNKNOWN"
	}
}
