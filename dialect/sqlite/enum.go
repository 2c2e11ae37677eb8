package sqlite

import (
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

// CreateEnumType implements dialect.Generator. SQLite has no enum type;
// Enum-typed columns already collapse to TEXT via sqlType.
func (g *Generator) CreateEnumType(*schema.EnumDefinition) string { return "" }

// AddEnumValue implements dialect.Generator. Not applicable to SQLite.
func (g *Generator) AddEnumValue(*diff.EnumDiff) []string { return nil }

// RecreateEnumType implements dialect.Generator. Not applicable to
// SQLite: a TEXT column never needs recreating when its permitted values
// change, since nothing enforces them at the column definition.
func (g *Generator) RecreateEnumType(*diff.EnumDiff) []string { return nil }

// DropEnumType implements dialect.Generator. Not applicable to SQLite.
func (g *Generator) DropEnumType(string) string { return "" }
