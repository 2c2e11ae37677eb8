package syaml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brindlebyte/schemawright/schema"
)

type converter struct {
	doc   *yamlDocument
	enums map[string]*schema.EnumDefinition
}

func newConverter(doc *yamlDocument) *converter {
	return &converter{doc: doc}
}

func (c *converter) convert() (*schema.Schema, error) {
	if strings.TrimSpace(c.doc.Version) == "" {
		return nil, fmt.Errorf("syaml: version is empty")
	}

	c.enums = make(map[string]*schema.EnumDefinition, len(c.doc.Enums))
	for name, e := range c.doc.Enums {
		if len(e.Values) == 0 {
			return nil, fmt.Errorf("syaml: enum %q has no values", name)
		}
		c.enums[name] = &schema.EnumDefinition{Name: name, Values: e.Values}
	}

	tables := make(map[string]*schema.Table, len(c.doc.Tables))
	for name, yt := range c.doc.Tables {
		t, err := c.convertTable(name, &yt)
		if err != nil {
			return nil, fmt.Errorf("syaml: table %q: %w", name, err)
		}
		tables[name] = t
	}

	return &schema.Schema{
		Version:             c.doc.Version,
		Tables:              tables,
		Enums:               c.enums,
		EnumRecreateAllowed: c.doc.EnumRecreateAllowed,
	}, nil
}

func (c *converter) convertTable(name string, yt *yamlTable) (*schema.Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("table name is empty")
	}

	table := &schema.Table{Name: name, RenamedFrom: yt.RenamedFrom}

	if err := c.convertColumns(table, yt); err != nil {
		return nil, err
	}

	for i := range yt.Constraints {
		con, err := c.convertConstraint(table, &yt.Constraints[i])
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		table.Constraints = append(table.Constraints, con)
	}
	if err := validateConstraints(table); err != nil {
		return nil, err
	}

	for i := range yt.Indexes {
		idx, err := convertIndex(&yt.Indexes[i])
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", yt.Indexes[i].Name, err)
		}
		table.Indexes = append(table.Indexes, idx)
	}
	if err := validateIndexes(table); err != nil {
		return nil, err
	}

	return table, nil
}

func (c *converter) convertColumns(table *schema.Table, yt *yamlTable) error {
	seen := make(map[string]bool, len(yt.Columns))
	for i := range yt.Columns {
		yc := &yt.Columns[i]
		col, err := c.convertColumn(yc)
		if err != nil {
			return fmt.Errorf("column %q: %w", yc.Name, err)
		}
		lower := strings.ToLower(col.Name)
		if seen[lower] {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[lower] = true
		table.Columns = append(table.Columns, col)
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("table has no columns")
	}
	return nil
}

func (c *converter) convertColumn(yc *yamlColumn) (*schema.Column, error) {
	if strings.TrimSpace(yc.Name) == "" {
		return nil, fmt.Errorf("column name is empty")
	}

	t, err := c.resolveColumnType(yc)
	if err != nil {
		return nil, err
	}

	return &schema.Column{
		Name:          yc.Name,
		Type:          t,
		Nullable:      yc.Nullable,
		DefaultValue:  yc.DefaultValue,
		AutoIncrement: yc.AutoIncrement,
		RenamedFrom:   yc.RenamedFrom,
	}, nil
}

// resolveColumnType dispatches on the declared type key, the same way
// parser_column.go in the TOML format dispatches on a dialect override:
// each variant reads only the fields that apply to it.
func (c *converter) resolveColumnType(yc *yamlColumn) (schema.ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(yc.Type)) {
	case "":
		return nil, fmt.Errorf("type is empty")
	case "integer":
		return schema.Integer{Precision: yc.Precision}, nil
	case "varchar":
		if yc.Length == 0 {
			return nil, fmt.Errorf("type varchar requires length")
		}
		return schema.Varchar{Length: yc.Length}, nil
	case "char":
		if yc.Length == 0 {
			return nil, fmt.Errorf("type char requires length")
		}
		return schema.Char{Length: yc.Length}, nil
	case "text":
		return schema.Text{}, nil
	case "decimal":
		var p uint8
		if yc.Precision != nil {
			p = *yc.Precision
		}
		if yc.Scale > p {
			return nil, fmt.Errorf("type decimal: scale %d exceeds precision %d", yc.Scale, p)
		}
		return schema.Decimal{Precision: p, Scale: yc.Scale}, nil
	case "float":
		return schema.Float{}, nil
	case "double":
		return schema.Double{}, nil
	case "boolean":
		return schema.Boolean{}, nil
	case "date":
		return schema.Date{}, nil
	case "time":
		return schema.Time{WithTimeZone: yc.WithTimeZone}, nil
	case "timestamp":
		return schema.Timestamp{WithTimeZone: yc.WithTimeZone}, nil
	case "json":
		return schema.JSON{}, nil
	case "jsonb":
		return schema.JSONB{}, nil
	case "blob":
		return schema.Blob{}, nil
	case "uuid":
		return schema.UUID{}, nil
	case "enum":
		if yc.EnumName == "" {
			return nil, fmt.Errorf("type enum requires enum_name")
		}
		if _, ok := c.enums[yc.EnumName]; !ok {
			return nil, fmt.Errorf("type enum references undeclared enum %q", yc.EnumName)
		}
		return schema.Enum{Name: yc.EnumName}, nil
	case "dialect_specific":
		if yc.Kind == "" {
			return nil, fmt.Errorf("type dialect_specific requires kind")
		}
		return schema.DialectSpecific{Kind: yc.Kind, Params: []byte(yc.Params)}, nil
	default:
		return nil, fmt.Errorf("unrecognized type %q", yc.Type)
	}
}

func convertIndex(yi *yamlIndex) (*schema.Index, error) {
	if len(yi.Columns) == 0 {
		name := yi.Name
		if name == "" {
			name = "(unnamed)"
		}
		return nil, fmt.Errorf("index %s has no columns", name)
	}
	return &schema.Index{Name: yi.Name, Columns: yi.Columns, Unique: yi.Unique}, nil
}

// validateIndexes checks for duplicate names and verifies that every
// index column references an existing table column.
func validateIndexes(table *schema.Table) error {
	seen := make(map[string]bool, len(table.Indexes))
	for _, idx := range table.Indexes {
		if idx.Name == "" {
			continue
		}
		lower := strings.ToLower(idx.Name)
		if seen[lower] {
			return fmt.Errorf("duplicate index name %q", idx.Name)
		}
		seen[lower] = true
	}
	for _, idx := range table.Indexes {
		for _, col := range idx.Columns {
			if table.ColumnByName(col) == nil {
				return fmt.Errorf("index %q references nonexistent column %q", idx.Name, col)
			}
		}
	}
	return nil
}

func (c *converter) convertConstraint(table *schema.Table, yc *yamlConstraint) (schema.Constraint, error) {
	switch strings.ToLower(strings.TrimSpace(yc.Kind)) {
	case "primary_key":
		if len(yc.Columns) == 0 {
			return nil, fmt.Errorf("primary_key constraint has no columns")
		}
		return schema.PrimaryKey{Columns: yc.Columns}, nil
	case "unique":
		if len(yc.Columns) == 0 {
			return nil, fmt.Errorf("unique constraint has no columns")
		}
		return schema.Unique{Columns: yc.Columns}, nil
	case "check":
		if yc.CheckExpression == "" {
			return nil, fmt.Errorf("check constraint has no check_expression")
		}
		return schema.Check{Columns: yc.Columns, CheckExpression: yc.CheckExpression}, nil
	case "foreign_key":
		if len(yc.Columns) == 0 {
			return nil, fmt.Errorf("foreign_key constraint has no columns")
		}
		if yc.ReferencedTable == "" {
			return nil, fmt.Errorf("foreign_key constraint is missing referenced_table")
		}
		if len(yc.ReferencedColumns) == 0 {
			return nil, fmt.Errorf("foreign_key constraint is missing referenced_columns")
		}
		return schema.ForeignKey{
			Columns:           yc.Columns,
			ReferencedTable:   yc.ReferencedTable,
			ReferencedColumns: yc.ReferencedColumns,
		}, nil
	default:
		return nil, fmt.Errorf("unrecognized constraint kind %q", yc.Kind)
	}
}

// validateConstraints verifies every constraint column (other than
// check, which is expression-based) references an existing table column.
func validateConstraints(table *schema.Table) error {
	for _, con := range table.Constraints {
		var cols []string
		switch v := con.(type) {
		case schema.PrimaryKey:
			cols = v.Columns
		case schema.Unique:
			cols = v.Columns
		case schema.ForeignKey:
			cols = v.Columns
		case schema.Check:
			continue
		}
		for _, col := range cols {
			if table.ColumnByName(col) == nil {
				return fmt.Errorf("constraint references nonexistent column %q", col)
			}
		}
	}
	return nil
}

// sortedTableNames returns table names in alphabetical order, used by the
// serializer when it builds the document's table map.
func sortedTableNames(tables map[string]*schema.Table) []string {
	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
