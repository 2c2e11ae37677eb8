package mysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

// CreateTable implements dialect.Generator.
func (g *Generator) CreateTable(table *schema.Table) (string, []string) {
	var lines []string
	for _, c := range table.Columns {
		lines = append(lines, "    "+g.columnDef(c))
	}
	for _, c := range table.Constraints {
		if def := g.inlineConstraint(c); def != "" {
			lines = append(lines, "    "+def)
		}
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (\n%s\n);", g.QuoteIdentifier(table.Name), strings.Join(lines, ",\n"))

	var fkStatements []string
	for _, c := range table.Constraints {
		if _, ok := c.(schema.ForeignKey); ok {
			fkStatements = append(fkStatements, g.AddTableConstraint(table, c))
		}
	}
	return stmt, fkStatements
}

func (g *Generator) typeAttrs(c *schema.Column) string {
	parts := []string{g.sqlType(c.Type)}
	if !c.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if c.AutoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}
	if c.DefaultValue != nil {
		parts = append(parts, "DEFAULT "+g.formatValue(*c.DefaultValue))
	}
	return strings.Join(parts, " ")
}

func (g *Generator) columnDef(c *schema.Column) string {
	return g.QuoteIdentifier(c.Name) + " " + g.typeAttrs(c)
}

func (g *Generator) formatValue(v string) string {
	trimmed := strings.TrimSpace(v)
	upper := strings.ToUpper(trimmed)
	switch upper {
	case "NULL", "CURRENT_TIMESTAMP", "TRUE", "FALSE":
		return upper
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return trimmed
	}
	return g.QuoteString(trimmed)
}

func (g *Generator) inlineConstraint(c schema.Constraint) string {
	switch v := c.(type) {
	case schema.PrimaryKey:
		return fmt.Sprintf("PRIMARY KEY (%s)", g.quoteColumns(v.Columns))
	case schema.Unique:
		return fmt.Sprintf("UNIQUE (%s)", g.quoteColumns(v.Columns))
	case schema.Check:
		return fmt.Sprintf("CHECK (%s)", v.CheckExpression)
	default:
		return ""
	}
}

func (g *Generator) quoteColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = g.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

// CreateIndex implements dialect.Generator.
func (g *Generator) CreateIndex(table *schema.Table, idx *schema.Index) string {
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s);", unique, g.QuoteIdentifier(idx.Name), g.QuoteIdentifier(table.Name), g.quoteColumns(idx.Columns))
}

// AddTableConstraint implements dialect.Generator. CreateTable only calls
// this for FOREIGN KEY (the other kinds are always inlined), but the
// migration pipeline also calls it directly for a constraint added to an
// already-existing table, where every kind needs a standalone statement.
// PRIMARY KEY has no CONSTRAINT-name form in MySQL, so it is unnamed.
func (g *Generator) AddTableConstraint(table *schema.Table, c schema.Constraint) string {
	switch v := c.(type) {
	case schema.PrimaryKey:
		return fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY (%s);", g.QuoteIdentifier(table.Name), g.quoteColumns(v.Columns))
	case schema.Unique:
		name := dialect.ConstraintName(table.Name, v)
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s);",
			g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name), g.quoteColumns(v.Columns))
	case schema.Check:
		name := dialect.ConstraintName(table.Name, v)
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);",
			g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name), v.CheckExpression)
	case schema.ForeignKey:
		name := dialect.ForeignKeyName(table.Name, v.Columns, v.ReferencedTable)
		return fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s);",
			g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name), g.quoteColumns(v.Columns),
			g.QuoteIdentifier(v.ReferencedTable), g.quoteColumns(v.ReferencedColumns),
		)
	default:
		return ""
	}
}

// DropTableConstraint implements dialect.Generator. MySQL has no generic
// DROP CONSTRAINT that works for every kind, so each branches to its own
// syntax: a table has at most one PRIMARY KEY so it needs no name, UNIQUE
// is implemented as an index and dropped as one, CHECK and FOREIGN KEY
// each have their own DROP form.
func (g *Generator) DropTableConstraint(table *schema.Table, c schema.Constraint) string {
	switch v := c.(type) {
	case schema.PrimaryKey:
		return fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY;", g.QuoteIdentifier(table.Name))
	case schema.Unique:
		name := dialect.ConstraintName(table.Name, v)
		return fmt.Sprintf("ALTER TABLE %s DROP INDEX %s;", g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name))
	case schema.Check:
		name := dialect.ConstraintName(table.Name, v)
		return fmt.Sprintf("ALTER TABLE %s DROP CHECK %s;", g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name))
	case schema.ForeignKey:
		name := dialect.ForeignKeyName(table.Name, v.Columns, v.ReferencedTable)
		return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s;", g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name))
	default:
		return ""
	}
}

// AddColumn implements dialect.Generator.
func (g *Generator) AddColumn(tableName string, col *schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", g.QuoteIdentifier(tableName), g.columnDef(col))
}

// DropColumn implements dialect.Generator.
func (g *Generator) DropColumn(tableName, columnName string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", g.QuoteIdentifier(tableName), g.QuoteIdentifier(columnName))
}

// DropTable implements dialect.Generator.
func (g *Generator) DropTable(tableName string) string {
	return fmt.Sprintf("DROP TABLE %s;", g.QuoteIdentifier(tableName))
}

// DropIndex implements dialect.Generator. MySQL requires the owning table
// name alongside the index name.
func (g *Generator) DropIndex(tableName string, idx *schema.Index) string {
	return fmt.Sprintf("DROP INDEX %s ON %s;", g.QuoteIdentifier(idx.Name), g.QuoteIdentifier(tableName))
}

func sourceTarget(cd *diff.ColumnDiff, dir dialect.Direction) (src, dst *schema.Column) {
	if dir == dialect.Up {
		return cd.OldColumn, cd.NewColumn
	}
	return cd.NewColumn, cd.OldColumn
}

// AlterColumnType implements dialect.Generator: MySQL requires the full
// column definition be repeated even for a single-attribute change. The
// column is addressed by cd.ColumnName, the name it has when the statement
// runs.
func (g *Generator) AlterColumnType(table *schema.Table, cd *diff.ColumnDiff, dir dialect.Direction) []string {
	_, dst := sourceTarget(cd, dir)
	col := *dst
	if cd.ColumnName != "" {
		col.Name = cd.ColumnName
	}
	return []string{fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s;", g.QuoteIdentifier(table.Name), g.columnDef(&col))}
}

// AlterColumnTypeWithOldTable implements dialect.Generator. MySQL has no
// table-recreation path, so it delegates straight to AlterColumnType.
func (g *Generator) AlterColumnTypeWithOldTable(table *schema.Table, cd *diff.ColumnDiff, dir dialect.Direction, _ *schema.Table) []string {
	return g.AlterColumnType(table, cd, dir)
}

// RenameColumn implements dialect.Generator: CHANGE COLUMN requires
// repeating the complete column definition even for a pure rename. The
// rename itself never changes type: in UP it runs before any type-change
// statement, in DOWN it runs after the type has already been reversed, so
// in both cases the attributes in force at that moment are the old
// column's.
func (g *Generator) RenameColumn(table *schema.Table, rc *diff.RenamedColumn, dir dialect.Direction) []string {
	from, to := rc.OldName, rc.NewName
	if dir == dialect.Down {
		from, to = rc.NewName, rc.OldName
	}
	return []string{fmt.Sprintf(
		"ALTER TABLE %s CHANGE COLUMN %s %s %s;",
		g.QuoteIdentifier(table.Name), g.QuoteIdentifier(from), g.QuoteIdentifier(to), g.typeAttrs(rc.OldColumn),
	)}
}
