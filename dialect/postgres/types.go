package postgres

import (
	"fmt"

	"github.com/brindlebyte/schemawright/schema"
	"github.com/brindlebyte/schemawright/typecategory"
)

// sqlType renders t as a PostgreSQL type token. autoIncrement selects the
// SERIAL family for Integer columns; ALTER TYPE targets must always pass
// false, since SERIAL is not a real assignable type.
func sqlType(t schema.ColumnType, autoIncrement bool) string {
	switch v := t.(type) {
	case schema.Integer:
		return integerType(v.Precision, autoIncrement)
	case schema.Varchar:
		return fmt.Sprintf("VARCHAR(%d)", v.Length)
	case schema.Char:
		return fmt.Sprintf("CHAR(%d)", v.Length)
	case schema.Text:
		return "TEXT"
	case schema.Decimal:
		return fmt.Sprintf("NUMERIC(%d,%d)", v.Precision, v.Scale)
	case schema.Float:
		return "REAL"
	case schema.Double:
		return "DOUBLE PRECISION"
	case schema.Boolean:
		return "BOOLEAN"
	case schema.Date:
		return "DATE"
	case schema.Time:
		if v.WithTimeZone != nil && *v.WithTimeZone {
			return "TIME WITH TIME ZONE"
		}
		return "TIME"
	case schema.Timestamp:
		if v.WithTimeZone != nil && *v.WithTimeZone {
			return "TIMESTAMP WITH TIME ZONE"
		}
		return "TIMESTAMP"
	case schema.JSON:
		return "JSON"
	case schema.JSONB:
		return "JSONB"
	case schema.Blob:
		return "BYTEA"
	case schema.UUID:
		return "UUID"
	case schema.Enum:
		return v.Name
	case schema.DialectSpecific:
		return v.Kind
	default:
		return "TEXT"
	}
}

func integerType(precision *uint8, autoIncrement bool) string {
	switch {
	case precision != nil && *precision == 2:
		if autoIncrement {
			return "SMALLSERIAL"
		}
		return "SMALLINT"
	case precision != nil && *precision == 8:
		if autoIncrement {
			return "BIGSERIAL"
		}
		return "BIGINT"
	default:
		if autoIncrement {
			return "SERIAL"
		}
		return "INTEGER"
	}
}

// needsUsingClause reports whether converting from src's category to dst's
// category requires an explicit USING cast: the categories differ and
// either side is Other, or the conversion is String to Numeric, Boolean,
// DateTime, or Json.
func needsUsingClause(src, dst schema.ColumnType) bool {
	fc := typecategory.Classify(src)
	tc := typecategory.Classify(dst)
	if fc == tc {
		return false
	}
	if fc == typecategory.Other || tc == typecategory.Other {
		return true
	}
	if fc == typecategory.String {
		switch tc {
		case typecategory.Numeric, typecategory.Boolean, typecategory.DateTime, typecategory.Json:
			return true
		}
	}
	return false
}
