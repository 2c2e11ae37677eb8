package schema

import "encoding/json"

// ColumnType is the central tagged-variant sum type describing a column's
// storage type independent of any SQL dialect. The concrete variants below
// are the only implementations; callers type-switch on them. Equality is
// structural — two variants are Equal iff they carry the same concrete
// type and the same field values.
type ColumnType interface {
	columnType()
	// Equal reports whether other is the same variant with the same
	// parameters.
	Equal(other ColumnType) bool
}

// Integer is a whole-number type. Precision selects the dialect-specific
// width class: 2 for SMALLINT-class, 8 for BIGINT-class, nil or any other
// value for the dialect's ordinary INTEGER.
type Integer struct {
	Precision *uint8
}

func (Integer) columnType() {}

// Equal implements ColumnType.
func (i Integer) Equal(other ColumnType) bool {
	o, ok := other.(Integer)
	if !ok {
		return false
	}
	return uint8PtrEqual(i.Precision, o.Precision)
}

func uint8PtrEqual(a, b *uint8) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Varchar is a variable-length string bounded to Length characters.
type Varchar struct {
	Length uint32
}

func (Varchar) columnType()              {}
func (v Varchar) Equal(o ColumnType) bool { c, ok := o.(Varchar); return ok && c.Length == v.Length }

// Char is a fixed-length, blank-padded string of Length characters.
type Char struct {
	Length uint32
}

func (Char) columnType()               {}
func (c Char) Equal(o ColumnType) bool { v, ok := o.(Char); return ok && v.Length == c.Length }

// Text is an unbounded string.
type Text struct{}

func (Text) columnType()              {}
func (Text) Equal(o ColumnType) bool  { _, ok := o.(Text); return ok }

// Decimal is a fixed-point number with Precision total digits and Scale
// digits after the point.
type Decimal struct {
	Precision uint8
	Scale     uint8
}

func (Decimal) columnType() {}
func (d Decimal) Equal(o ColumnType) bool {
	c, ok := o.(Decimal)
	return ok && c.Precision == d.Precision && c.Scale == d.Scale
}

// Float is a single-precision floating-point number.
type Float struct{}

func (Float) columnType()             {}
func (Float) Equal(o ColumnType) bool { _, ok := o.(Float); return ok }

// Double is a double-precision floating-point number.
type Double struct{}

func (Double) columnType()             {}
func (Double) Equal(o ColumnType) bool { _, ok := o.(Double); return ok }

// Boolean is a true/false value.
type Boolean struct{}

func (Boolean) columnType()             {}
func (Boolean) Equal(o ColumnType) bool { _, ok := o.(Boolean); return ok }

// Date is a calendar date with no time component.
type Date struct{}

func (Date) columnType()             {}
func (Date) Equal(o ColumnType) bool { _, ok := o.(Date); return ok }

// Time is a time-of-day value, optionally timezone-aware.
type Time struct {
	WithTimeZone *bool
}

func (Time) columnType() {}
func (t Time) Equal(o ColumnType) bool {
	c, ok := o.(Time)
	return ok && boolPtrEqual(t.WithTimeZone, c.WithTimeZone)
}

// Timestamp is a combined date/time value, optionally timezone-aware.
type Timestamp struct {
	WithTimeZone *bool
}

func (Timestamp) columnType() {}
func (t Timestamp) Equal(o ColumnType) bool {
	c, ok := o.(Timestamp)
	return ok && boolPtrEqual(t.WithTimeZone, c.WithTimeZone)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// JSON is an unindexed JSON document.
type JSON struct{}

func (JSON) columnType()             {}
func (JSON) Equal(o ColumnType) bool { _, ok := o.(JSON); return ok }

// JSONB is a binary-stored, indexable JSON document (PostgreSQL).
type JSONB struct{}

func (JSONB) columnType()             {}
func (JSONB) Equal(o ColumnType) bool { _, ok := o.(JSONB); return ok }

// Blob is an opaque byte sequence.
type Blob struct{}

func (Blob) columnType()             {}
func (Blob) Equal(o ColumnType) bool { _, ok := o.(Blob); return ok }

// UUID is a 128-bit universally unique identifier.
type UUID struct{}

func (UUID) columnType()             {}
func (UUID) Equal(o ColumnType) bool { _, ok := o.(UUID); return ok }

// Enum references a named EnumDefinition declared elsewhere in the schema.
type Enum struct {
	Name string
}

func (Enum) columnType()             {}
func (e Enum) Equal(o ColumnType) bool { c, ok := o.(Enum); return ok && c.Name == e.Name }

// DialectSpecific is the single approved escape hatch for vendor types the
// closed variant set above does not model. Params is opaque JSON carried
// verbatim; Equal compares it byte-for-byte after re-marshaling is not
// attempted — callers are expected to author Params consistently.
type DialectSpecific struct {
	Kind   string
	Params json.RawMessage
}

func (DialectSpecific) columnType() {}
func (d DialectSpecific) Equal(o ColumnType) bool {
	c, ok := o.(DialectSpecific)
	if !ok || c.Kind != d.Kind {
		return false
	}
	return string(c.Params) == string(d.Params)
}
