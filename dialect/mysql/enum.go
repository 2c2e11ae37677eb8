package mysql

import (
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

// CreateEnumType implements dialect.Generator. MySQL has no named enum
// type; ENUM values are inlined directly in the column definition.
func (g *Generator) CreateEnumType(*schema.EnumDefinition) string { return "" }

// AddEnumValue implements dialect.Generator. Not applicable to MySQL.
func (g *Generator) AddEnumValue(*diff.EnumDiff) []string { return nil }

// RecreateEnumType implements dialect.Generator. Not applicable to MySQL:
// an inline ENUM's values change via the same MODIFY/CHANGE COLUMN
// statements used for any other type change.
func (g *Generator) RecreateEnumType(*diff.EnumDiff) []string { return nil }

// DropEnumType implements dialect.Generator. Not applicable to MySQL.
func (g *Generator) DropEnumType(string) string { return "" }
