// Package sqlite implements the SQLite dialect.Generator. SQLite's ALTER
// TABLE support is the thinnest of the three dialects: most structural
// changes beyond adding a column or renaming one go through a full
// table-recreation dance rather than an in-place ALTER.
package sqlite

import (
	"regexp"
	"strings"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/schema"
)

func init() {
	dialect.RegisterDialect(schema.SQLite, func() dialect.Generator {
		return NewGenerator()
	})
}

// Generator is a SQLite DDL generator. Like MySQL, it accepts an enum
// lookup through SetEnums, but column rendering never consults it: SQLite
// has no native enum support, so every Enum-typed column is a plain TEXT
// column with no CHECK on its values.
type Generator struct {
	enums map[string]*schema.EnumDefinition
}

// NewGenerator constructs a SQLite Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// SetEnums installs the enum definitions referenced by Enum-typed columns.
func (g *Generator) SetEnums(enums map[string]*schema.EnumDefinition) {
	g.enums = enums
}

// Name implements dialect.Generator.
func (g *Generator) Name() schema.Dialect { return schema.SQLite }

var plainIdentRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QuoteIdentifier double-quotes name only when it is not already a bare
// lowercase identifier.
func (g *Generator) QuoteIdentifier(name string) string {
	if plainIdentRe.MatchString(name) {
		return name
	}
	return `"` + name + `"`
}

// QuoteString renders v as a single-quoted SQL string literal, doubling
// any embedded quotes.
func (g *Generator) QuoteString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
