// Package postgres implements the PostgreSQL dialect.Generator: USING-clause
// casts for cross-category type changes, the SERIAL/sequence dance for
// auto-increment transitions, and the four-statement enum recreate
// sequence.
package postgres

import (
	"regexp"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/schema"
)

func init() {
	dialect.RegisterDialect(schema.PostgreSQL, func() dialect.Generator {
		return NewGenerator()
	})
}

// Generator is a stateless PostgreSQL DDL generator.
type Generator struct{}

// NewGenerator constructs a PostgreSQL Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Name implements dialect.Generator.
func (g *Generator) Name() schema.Dialect { return schema.PostgreSQL }

var plainIdentRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QuoteIdentifier quotes name only when it is not already a bare
// lowercase identifier, matching PostgreSQL's own folding rules.
func (g *Generator) QuoteIdentifier(name string) string {
	if plainIdentRe.MatchString(name) {
		return name
	}
	return `"` + name + `"`
}

// QuoteString renders v as a single-quoted SQL string literal, doubling
// any embedded quotes.
func (g *Generator) QuoteString(v string) string {
	escaped := ""
	for _, r := range v {
		if r == '\'' {
			escaped += "''"
		} else {
			escaped += string(r)
		}
	}
	return "'" + escaped + "'"
}
