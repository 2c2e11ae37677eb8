// Package meta computes the content checksum and builds the YAML
// metadata sidecar for one generated migration: a stable SHA-256 digest
// of the current schema in a canonical, whitespace-free encoding, plus
// the version/description/dialect/checksum/destructive_changes document
// consumers read back.
package meta

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/brindlebyte/schemawright/schema"
)

// Checksum computes a stable hex-encoded SHA-256 digest of s. Two schemas
// that differ only in Go map iteration order (table or enum insertion
// order) hash identically, since the canonical encoding sorts every map
// by key before marshaling.
func Checksum(s *schema.Schema) (string, error) {
	canon, err := canonicalJSON(s)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalJSON(s *schema.Schema) ([]byte, error) {
	doc := map[string]interface{}{
		"version":               s.Version,
		"tables":                canonicalTables(s.Tables),
		"enums":                 canonicalEnums(s.Enums),
		"enum_recreate_allowed": s.EnumRecreateAllowed,
	}
	// encoding/json sorts map[string]X keys on marshal, which is what
	// makes this encoding canonical without hand-rolled key ordering.
	return json.Marshal(doc)
}

func canonicalTables(tables map[string]*schema.Table) []map[string]interface{} {
	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]map[string]interface{}, 0, len(names))
	for _, n := range names {
		t := tables[n]
		columns := make([]map[string]interface{}, 0, len(t.Columns))
		for _, c := range t.Columns {
			columns = append(columns, map[string]interface{}{
				"name":           c.Name,
				"type":           canonicalColumnType(c.Type),
				"nullable":       c.Nullable,
				"default_value":  c.DefaultValue,
				"auto_increment": c.AutoIncrement,
			})
		}
		indexes := make([]map[string]interface{}, 0, len(t.Indexes))
		for _, idx := range t.Indexes {
			indexes = append(indexes, map[string]interface{}{
				"name":    idx.Name,
				"columns": idx.Columns,
				"unique":  idx.Unique,
			})
		}
		constraints := make([]map[string]interface{}, 0, len(t.Constraints))
		for _, c := range t.Constraints {
			constraints = append(constraints, canonicalConstraint(c))
		}
		out = append(out, map[string]interface{}{
			"name":        n,
			"columns":     columns,
			"indexes":     indexes,
			"constraints": constraints,
		})
	}
	return out
}

func canonicalEnums(enums map[string]*schema.EnumDefinition) []map[string]interface{} {
	names := make([]string, 0, len(enums))
	for n := range enums {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]map[string]interface{}, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]interface{}{
			"name":   n,
			"values": enums[n].Values,
		})
	}
	return out
}

func canonicalColumnType(t schema.ColumnType) map[string]interface{} {
	switch v := t.(type) {
	case schema.Integer:
		return map[string]interface{}{"type": "integer", "precision": v.Precision}
	case schema.Varchar:
		return map[string]interface{}{"type": "varchar", "length": v.Length}
	case schema.Char:
		return map[string]interface{}{"type": "char", "length": v.Length}
	case schema.Text:
		return map[string]interface{}{"type": "text"}
	case schema.Decimal:
		return map[string]interface{}{"type": "decimal", "precision": v.Precision, "scale": v.Scale}
	case schema.Float:
		return map[string]interface{}{"type": "float"}
	case schema.Double:
		return map[string]interface{}{"type": "double"}
	case schema.Boolean:
		return map[string]interface{}{"type": "boolean"}
	case schema.Date:
		return map[string]interface{}{"type": "date"}
	case schema.Time:
		return map[string]interface{}{"type": "time", "with_time_zone": v.WithTimeZone}
	case schema.Timestamp:
		return map[string]interface{}{"type": "timestamp", "with_time_zone": v.WithTimeZone}
	case schema.JSON:
		return map[string]interface{}{"type": "json"}
	case schema.JSONB:
		return map[string]interface{}{"type": "jsonb"}
	case schema.Blob:
		return map[string]interface{}{"type": "blob"}
	case schema.UUID:
		return map[string]interface{}{"type": "uuid"}
	case schema.Enum:
		return map[string]interface{}{"type": "enum", "name": v.Name}
	case schema.DialectSpecific:
		return map[string]interface{}{"type": "dialect_specific", "kind": v.Kind, "params": json.RawMessage(v.Params)}
	default:
		return map[string]interface{}{"type": "unknown"}
	}
}

func canonicalConstraint(c schema.Constraint) map[string]interface{} {
	switch v := c.(type) {
	case schema.PrimaryKey:
		return map[string]interface{}{"kind": "primary_key", "columns": v.Columns}
	case schema.Unique:
		return map[string]interface{}{"kind": "unique", "columns": v.Columns}
	case schema.Check:
		return map[string]interface{}{"kind": "check", "columns": v.Columns, "check_expression": v.CheckExpression}
	case schema.ForeignKey:
		return map[string]interface{}{
			"kind": "foreign_key", "columns": v.Columns,
			"referenced_table": v.ReferencedTable, "referenced_columns": v.ReferencedColumns,
		}
	default:
		return map[string]interface{}{"kind": "unknown"}
	}
}
