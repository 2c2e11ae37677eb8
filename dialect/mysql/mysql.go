// Package mysql implements the MySQL dialect.Generator: full-definition
// MODIFY/CHANGE COLUMN statements (MySQL never supports a partial ALTER),
// AUTO_INCREMENT attached to the type token, and inline ENUM literals in
// place of PostgreSQL's named enum types.
package mysql

import (
	"regexp"
	"strings"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/schema"
)

func init() {
	dialect.RegisterDialect(schema.MySQL, func() dialect.Generator {
		return NewGenerator()
	})
}

// Generator is a MySQL DDL generator. It carries a lookup of enum
// definitions by name because, unlike PostgreSQL, MySQL has no named enum
// type to reference — every ENUM column must spell out its values inline.
// The pipeline calls SetEnums with the current schema's enum set before
// generating.
type Generator struct {
	enums map[string]*schema.EnumDefinition
}

// NewGenerator constructs a MySQL Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// SetEnums installs the enum definitions referenced by Enum-typed columns.
func (g *Generator) SetEnums(enums map[string]*schema.EnumDefinition) {
	g.enums = enums
}

// Name implements dialect.Generator.
func (g *Generator) Name() schema.Dialect { return schema.MySQL }

var plainIdentRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QuoteIdentifier backtick-quotes name only when it is not already a bare
// lowercase identifier.
func (g *Generator) QuoteIdentifier(name string) string {
	if plainIdentRe.MatchString(name) {
		return name
	}
	return "`" + name + "`"
}

// QuoteString renders v as a single-quoted SQL string literal, doubling
// any embedded quotes.
func (g *Generator) QuoteString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
