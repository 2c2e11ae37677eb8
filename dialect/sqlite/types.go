package sqlite

import "github.com/brindlebyte/schemawright/schema"

// sqlType collapses the ColumnType sum type onto SQLite's storage
// affinities: INTEGER, TEXT, REAL, BLOB.
func (g *Generator) sqlType(t schema.ColumnType) string {
	switch t.(type) {
	case schema.Integer, schema.Boolean:
		return "INTEGER"
	case schema.Float, schema.Double:
		return "REAL"
	case schema.Blob:
		return "BLOB"
	default:
		// VARCHAR, CHAR, TEXT, DECIMAL, DATE, TIME, TIMESTAMP, JSON,
		// JSONB, UUID, Enum and DialectSpecific all store as TEXT;
		// DECIMAL keeps its declared precision only in the schema,
		// not in the column affinity.
		return "TEXT"
	}
}
