package postgres

import (
	"fmt"
	"strings"

	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

// CreateEnumType implements dialect.Generator.
func (g *Generator) CreateEnumType(e *schema.EnumDefinition) string {
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);", g.QuoteIdentifier(e.Name), g.quoteValues(e.Values))
}

func (g *Generator) quoteValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = g.QuoteString(v)
	}
	return strings.Join(quoted, ", ")
}

// AddEnumValue implements dialect.Generator: one ALTER TYPE ... ADD VALUE
// per added value, in declaration order.
func (g *Generator) AddEnumValue(ed *diff.EnumDiff) []string {
	stmts := make([]string, 0, len(ed.AddedValues))
	for _, v := range ed.AddedValues {
		stmts = append(stmts, fmt.Sprintf("ALTER TYPE %s ADD VALUE %s;", g.QuoteIdentifier(ed.EnumName), g.QuoteString(v)))
	}
	return stmts
}

// RecreateEnumType implements dialect.Generator: the four-statement
// rename-old/create-new/recast-columns/drop-old sequence.
func (g *Generator) RecreateEnumType(ed *diff.EnumDiff) []string {
	oldName := ed.EnumName + "_old"
	stmts := []string{
		fmt.Sprintf("ALTER TYPE %s RENAME TO %s;", g.QuoteIdentifier(ed.EnumName), g.QuoteIdentifier(oldName)),
		fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);", g.QuoteIdentifier(ed.EnumName), g.quoteValues(ed.NewValues)),
	}
	for _, ref := range ed.Columns {
		stmts = append(stmts, fmt.Sprintf(
			"ALTER TABLE %s ALTER COLUMN %s TYPE %s USING %s::text::%s;",
			g.QuoteIdentifier(ref.Table), g.QuoteIdentifier(ref.Column), g.QuoteIdentifier(ed.EnumName),
			g.QuoteIdentifier(ref.Column), g.QuoteIdentifier(ed.EnumName),
		))
	}
	stmts = append(stmts, fmt.Sprintf("DROP TYPE %s;", g.QuoteIdentifier(oldName)))
	return stmts
}

// DropEnumType implements dialect.Generator.
func (g *Generator) DropEnumType(name string) string {
	return fmt.Sprintf("DROP TYPE %s;", g.QuoteIdentifier(name))
}
