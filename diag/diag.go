// Package diag holds the shared warning/error vocabulary produced across
// the migration core: the diff detector, the type-change validator, and
// the migration pipeline all report through these same Warning and
// ValidationError shapes rather than each inventing its own.
package diag

// WarningKind classifies a non-blocking diagnostic.
type WarningKind string

const (
	DataLoss                       WarningKind = "DataLoss"
	PrecisionLoss                  WarningKind = "PrecisionLoss"
	DialectSpecificWarning         WarningKind = "DialectSpecific"
	OldColumnNotFound              WarningKind = "OldColumnNotFound"
	RenamedFromRemoveRecommendation WarningKind = "RenamedFromRemoveRecommendation"
	Compatibility                  WarningKind = "Compatibility"
)

// ErrorKind classifies a blocking validation error.
type ErrorKind string

const (
	Syntax           ErrorKind = "Syntax"
	Reference        ErrorKind = "Reference"
	ConstraintKind   ErrorKind = "Constraint"
	TypeConversion   ErrorKind = "TypeConversion"
	DialectConstraint ErrorKind = "DialectConstraint"
)

// Location pinpoints where a diagnostic applies. Column and Line are
// optional; Table alone is valid for table-level diagnostics.
type Location struct {
	Table  string
	Column string
	Line   int
}

// Warning is a non-blocking diagnostic attached to a location.
type Warning struct {
	Kind     WarningKind
	Message  string
	Location *Location
}

// ValidationError is a blocking diagnostic, optionally carrying a
// suggested remedy (e.g. "use TEXT as an intermediate type").
type ValidationError struct {
	Kind       ErrorKind
	Message    string
	Location   *Location
	Suggestion string
}

func (e ValidationError) Error() string {
	if e.Location != nil && e.Location.Column != "" {
		return e.Message + " (" + e.Location.Table + "." + e.Location.Column + ")"
	}
	if e.Location != nil && e.Location.Table != "" {
		return e.Message + " (" + e.Location.Table + ")"
	}
	return e.Message
}

// ValidationResult accumulates errors and warnings from validating a
// transition. A result is valid iff Errors is empty; Warnings never block.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []Warning
}

// IsValid reports whether the result carries no errors.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Merge appends other's errors and warnings onto r and returns r.
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	return r
}
