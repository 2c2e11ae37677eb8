package postgres

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
		if def := g.inlineConstraint(table, c); def != "" {
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

func (g *Generator) columnDef(c *schema.Column) string {
	parts := []string{g.QuoteIdentifier(c.Name), sqlType(c.Type, c.AutoIncrement)}
	if !c.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if c.DefaultValue != nil {
		parts = append(parts, "DEFAULT "+g.formatValue(*c.DefaultValue))
	}
	return strings.Join(parts, " ")
}

func (g *Generator) formatValue(v string) string {
	trimmed := strings.TrimSpace(v)
	upper := strings.ToUpper(trimmed)
	switch upper {
	case "NULL", "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME", "TRUE", "FALSE":
		return upper
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return trimmed
	}
	return g.QuoteString(trimmed)
}

func (g *Generator) inlineConstraint(table *schema.Table, c schema.Constraint) string {
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
func (g *Generator) AddTableConstraint(table *schema.Table, c schema.Constraint) string {
	name := dialect.ConstraintName(table.Name, c)
	switch v := c.(type) {
	case schema.PrimaryKey:
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s);",
			g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name), g.quoteColumns(v.Columns))
	case schema.Unique:
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s);",
			g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name), g.quoteColumns(v.Columns))
	case schema.Check:
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);",
			g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name), v.CheckExpression)
	case schema.ForeignKey:
		return fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s);",
			g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name), g.quoteColumns(v.Columns),
			g.QuoteIdentifier(v.ReferencedTable), g.quoteColumns(v.ReferencedColumns),
		)
	default:
		return ""
	}
}

// DropTableConstraint implements dialect.Generator. PostgreSQL has one
// generic form for every constraint kind.
func (g *Generator) DropTableConstraint(table *schema.Table, c schema.Constraint) string {
	name := dialect.ConstraintName(table.Name, c)
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;", g.QuoteIdentifier(table.Name), g.QuoteIdentifier(name))
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

// DropIndex implements dialect.Generator.
func (g *Generator) DropIndex(tableName string, idx *schema.Index) string {
	return fmt.Sprintf("DROP INDEX %s;", g.QuoteIdentifier(idx.Name))
}

func sourceTarget(cd *diff.ColumnDiff, dir dialect.Direction) (src, dst *schema.Column) {
	if dir == dialect.Up {
		return cd.OldColumn, cd.NewColumn
	}
	return cd.NewColumn, cd.OldColumn
}

// AlterColumnType implements dialect.Generator: a USING-clause cast when
// the category lattice requires it, followed by the SERIAL/sequence dance
// when auto_increment also changed.
func (g *Generator) AlterColumnType(table *schema.Table, cd *diff.ColumnDiff, dir dialect.Direction) []string {
	src, dst := sourceTarget(cd, dir)
	var stmts []string

	if cd.HasChange(diff.TypeChanged) {
		target := sqlType(dst.Type, false)
		using := ""
		if needsUsingClause(src.Type, dst.Type) {
			using = fmt.Sprintf(" USING %s::%s", g.QuoteIdentifier(cd.ColumnName), target)
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s%s;", g.QuoteIdentifier(table.Name), g.QuoteIdentifier(cd.ColumnName), target, using))
	}

	if cd.HasChange(diff.AutoIncrementChanged) {
		stmts = append(stmts, g.serialDance(table.Name, cd.ColumnName, src.AutoIncrement, dst.AutoIncrement)...)
	}

	return stmts
}

func (g *Generator) serialDance(table, column string, srcAuto, dstAuto bool) []string {
	seq := fmt.Sprintf("%s_%s_seq", table, column)
	qTable, qCol := g.QuoteIdentifier(table), g.QuoteIdentifier(column)

	if !srcAuto && dstAuto {
		return []string{
			fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s;", seq),
			fmt.Sprintf("SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 0), true);", seq, qCol, qTable),
			fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT nextval('%s');", qTable, qCol, seq),
			fmt.Sprintf("ALTER SEQUENCE %s OWNED BY %s.%s;", seq, qTable, qCol),
		}
	}
	if srcAuto && !dstAuto {
		return []string{
			fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT;", qTable, qCol),
			fmt.Sprintf("DROP SEQUENCE IF EXISTS %s CASCADE;", seq),
		}
	}
	return nil
}

// AlterColumnTypeWithOldTable implements dialect.Generator. PostgreSQL has
// no table-recreation path, so it delegates straight to AlterColumnType.
func (g *Generator) AlterColumnTypeWithOldTable(table *schema.Table, cd *diff.ColumnDiff, dir dialect.Direction, _ *schema.Table) []string {
	return g.AlterColumnType(table, cd, dir)
}

// RenameColumn implements dialect.Generator.
func (g *Generator) RenameColumn(table *schema.Table, rc *diff.RenamedColumn, dir dialect.Direction) []string {
	from, to := rc.OldName, rc.NewName
	if dir == dialect.Down {
		from, to = rc.NewName, rc.OldName
	}
	return []string{fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s;", g.QuoteIdentifier(table.Name), g.QuoteIdentifier(from), g.QuoteIdentifier(to))}
}
