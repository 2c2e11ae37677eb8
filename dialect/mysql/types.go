package mysql

import (
	"fmt"
	"strings"

	"github.com/brindlebyte/schemawright/schema"
)

func (g *Generator) sqlType(t schema.ColumnType) string {
	switch v := t.(type) {
	case schema.Integer:
		switch {
		case v.Precision != nil && *v.Precision == 2:
			return "SMALLINT"
		case v.Precision != nil && *v.Precision == 8:
			return "BIGINT"
		default:
			return "INTEGER"
		}
	case schema.Varchar:
		return fmt.Sprintf("VARCHAR(%d)", v.Length)
	case schema.Char:
		return fmt.Sprintf("CHAR(%d)", v.Length)
	case schema.Text:
		return "TEXT"
	case schema.Decimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", v.Precision, v.Scale)
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
		// No dialect constraint enforced here: typecheck only
		// inspects modified columns, so a freshly added column can
		// still declare JSONB. Degrade to JSON, MySQL's closest type.
		return "JSON"
	case schema.Blob:
		return "BLOB"
	case schema.UUID:
		return "CHAR(36)"
	case schema.Enum:
		if def, ok := g.enums[v.Name]; ok {
			return fmt.Sprintf("ENUM(%s)", g.quoteValues(def.Values))
		}
		return "TEXT"
	case schema.DialectSpecific:
		return v.Kind
	default:
		return "TEXT"
	}
}

func (g *Generator) quoteValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = g.QuoteString(v)
	}
	return strings.Join(quoted, ", ")
}
