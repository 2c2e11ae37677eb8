// Package typecategory classifies schema.ColumnType variants into coarse
// categories and names the legal cross-category type conversions. This is
// the only place cross-category conversion policy lives; the per-dialect
// generators and the type-change validator both consult it rather than
// encoding their own rules.
package typecategory

import "github.com/brindlebyte/schemawright/schema"

// Category is a coarse classification of a column type, used to decide
// whether converting from one type to another is safe, suspect, or
// outright illegal.
type Category string

const (
	Numeric  Category = "numeric"
	String   Category = "string"
	DateTime Category = "datetime"
	Boolean  Category = "boolean"
	Uuid     Category = "uuid"
	Json     Category = "json"
	Binary   Category = "binary"
	Other    Category = "other"
)

// Classify maps a ColumnType to its Category.
func Classify(t schema.ColumnType) Category {
	switch t.(type) {
	case schema.Integer, schema.Decimal, schema.Float, schema.Double:
		return Numeric
	case schema.Varchar, schema.Char, schema.Text:
		return String
	case schema.Date, schema.Time, schema.Timestamp:
		return DateTime
	case schema.Boolean:
		return Boolean
	case schema.UUID:
		return Uuid
	case schema.JSON, schema.JSONB:
		return Json
	case schema.Blob:
		return Binary
	default:
		// schema.Enum and schema.DialectSpecific carry no fixed
		// classification; treat them as Other so they convert safely
		// only to String (from String is a Warning), per the lattice
		// below.
		return Other
	}
}

// Result is the outcome of attempting to convert a column from one type to
// another.
type Result string

const (
	// Safe means the conversion is always permitted.
	Safe Result = "safe"
	// SafeWithPrecisionCheck means the conversion is permitted at the
	// category level, but the type-change validator must additionally
	// inspect size/precision parameters (see typecheck).
	SafeWithPrecisionCheck Result = "safe_with_precision_check"
	// Warning means the conversion is permitted but may fail or lose
	// data at runtime (e.g. a string cast to a number).
	Warning Result = "warning"
	// Error means the conversion is never permitted directly.
	Error Result = "error"
)

// ConversionResult implements the category lattice from the design: it is
// the single source of truth for which cross-category conversions are
// legal and at what severity.
func ConversionResult(from, to schema.ColumnType) Result {
	fc := Classify(from)
	tc := Classify(to)

	if fc == tc {
		return SafeWithPrecisionCheck
	}
	if tc == String {
		return Safe
	}
	if fc == String {
		return Warning
	}
	if fc == Numeric && tc == Boolean {
		return Safe
	}
	if fc == Boolean && tc == Numeric {
		return Safe
	}
	if fc == Binary || tc == Binary {
		// Binary converts safely to String and with a Warning from
		// String; both of those cases are already handled above, so
		// anything reaching here involving Binary is illegal.
		return Error
	}
	return Error
}
