package syaml

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brindlebyte/schemawright/schema"
)

// WriteFile renders s as YAML and writes it to path, the counterpart to
// ParseFile used to persist the `.schema_snapshot.yaml` sidecar.
func WriteFile(path string, s *schema.Schema) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("syaml: create file %q: %w", path, err)
	}
	defer f.Close()
	return Write(f, s)
}

// Write renders s as YAML to w.
func Write(w io.Writer, s *schema.Schema) error {
	doc := toDocument(s)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("syaml: encode error: %w", err)
	}
	return enc.Close()
}

func toDocument(s *schema.Schema) *yamlDocument {
	doc := &yamlDocument{
		Version:             s.Version,
		EnumRecreateAllowed: s.EnumRecreateAllowed,
		Enums:               make(map[string]yamlEnum, len(s.Enums)),
		Tables:              make(map[string]yamlTable, len(s.Tables)),
	}
	for name, e := range s.Enums {
		doc.Enums[name] = yamlEnum{Values: e.Values}
	}
	for _, name := range sortedTableNames(s.Tables) {
		doc.Tables[name] = toYAMLTable(s.Tables[name])
	}
	return doc
}

func toYAMLTable(t *schema.Table) yamlTable {
	yt := yamlTable{RenamedFrom: t.RenamedFrom}
	for _, c := range t.Columns {
		yt.Columns = append(yt.Columns, toYAMLColumn(c))
	}
	for _, idx := range t.Indexes {
		yt.Indexes = append(yt.Indexes, yamlIndex{Name: idx.Name, Columns: idx.Columns, Unique: idx.Unique})
	}
	for _, con := range t.Constraints {
		yt.Constraints = append(yt.Constraints, toYAMLConstraint(con))
	}
	return yt
}

func toYAMLColumn(c *schema.Column) yamlColumn {
	yc := yamlColumn{
		Name:          c.Name,
		Nullable:      c.Nullable,
		DefaultValue:  c.DefaultValue,
		AutoIncrement: c.AutoIncrement,
		RenamedFrom:   c.RenamedFrom,
	}
	switch v := c.Type.(type) {
	case schema.Integer:
		yc.Type = "integer"
		yc.Precision = v.Precision
	case schema.Varchar:
		yc.Type = "varchar"
		yc.Length = v.Length
	case schema.Char:
		yc.Type = "char"
		yc.Length = v.Length
	case schema.Text:
		yc.Type = "text"
	case schema.Decimal:
		yc.Type = "decimal"
		p := v.Precision
		yc.Precision = &p
		yc.Scale = v.Scale
	case schema.Float:
		yc.Type = "float"
	case schema.Double:
		yc.Type = "double"
	case schema.Boolean:
		yc.Type = "boolean"
	case schema.Date:
		yc.Type = "date"
	case schema.Time:
		yc.Type = "time"
		yc.WithTimeZone = v.WithTimeZone
	case schema.Timestamp:
		yc.Type = "timestamp"
		yc.WithTimeZone = v.WithTimeZone
	case schema.JSON:
		yc.Type = "json"
	case schema.JSONB:
		yc.Type = "jsonb"
	case schema.Blob:
		yc.Type = "blob"
	case schema.UUID:
		yc.Type = "uuid"
	case schema.Enum:
		yc.Type = "enum"
		yc.EnumName = v.Name
	case schema.DialectSpecific:
		yc.Type = "dialect_specific"
		yc.Kind = v.Kind
		yc.Params = string(v.Params)
	}
	return yc
}

func toYAMLConstraint(c schema.Constraint) yamlConstraint {
	switch v := c.(type) {
	case schema.PrimaryKey:
		return yamlConstraint{Kind: "primary_key", Columns: v.Columns}
	case schema.Unique:
		return yamlConstraint{Kind: "unique", Columns: v.Columns}
	case schema.Check:
		return yamlConstraint{Kind: "check", Columns: v.Columns, CheckExpression: v.CheckExpression}
	case schema.ForeignKey:
		return yamlConstraint{
			Kind: "foreign_key", Columns: v.Columns,
			ReferencedTable: v.ReferencedTable, ReferencedColumns: v.ReferencedColumns,
		}
	default:
		return yamlConstraint{}
	}
}
