package sqlite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

// CreateTable implements dialect.Generator. Foreign keys are always
// inlined; SQLite has no standalone ADD CONSTRAINT form for them.
func (g *Generator) CreateTable(table *schema.Table) (string, []string) {
	return g.createTableNamed(table.Name, table), nil
}

func (g *Generator) createTableNamed(name string, table *schema.Table) string {
	var lines []string
	for _, c := range table.Columns {
		lines = append(lines, "    "+g.columnDef(table, c))
	}
	for _, c := range table.Constraints {
		if def := g.inlineConstraint(table, c); def != "" {
			lines = append(lines, "    "+def)
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", g.QuoteIdentifier(name), strings.Join(lines, ",\n"))
}

// singlePrimaryKeyColumn reports whether col is the sole column of table's
// PRIMARY KEY constraint, the one case SQLite grants true auto-increment
// behaviour via INTEGER PRIMARY KEY AUTOINCREMENT.
func singlePrimaryKeyColumn(table *schema.Table, col *schema.Column) bool {
	for _, c := range table.Constraints {
		if pk, ok := c.(schema.PrimaryKey); ok {
			return len(pk.Columns) == 1 && pk.Columns[0] == col.Name
		}
	}
	return false
}

func (g *Generator) columnDef(table *schema.Table, c *schema.Column) string {
	parts := []string{g.QuoteIdentifier(c.Name), g.sqlType(c.Type)}
	if c.AutoIncrement && singlePrimaryKeyColumn(table, c) {
		parts = append(parts, "PRIMARY KEY AUTOINCREMENT")
	}
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

// inlineConstraint renders a table constraint for the CREATE TABLE body.
// A PRIMARY KEY already expressed as AUTOINCREMENT on its sole column is
// skipped here to avoid declaring the key twice.
func (g *Generator) inlineConstraint(table *schema.Table, c schema.Constraint) string {
	switch v := c.(type) {
	case schema.PrimaryKey:
		if len(v.Columns) == 1 {
			if col := table.ColumnByName(v.Columns[0]); col != nil && col.AutoIncrement {
				return ""
			}
		}
		return fmt.Sprintf("PRIMARY KEY (%s)", g.quoteColumns(v.Columns))
	case schema.Unique:
		return fmt.Sprintf("UNIQUE (%s)", g.quoteColumns(v.Columns))
	case schema.Check:
		return fmt.Sprintf("CHECK (%s)", v.CheckExpression)
	case schema.ForeignKey:
		return fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			g.quoteColumns(v.Columns), g.QuoteIdentifier(v.ReferencedTable), g.quoteColumns(v.ReferencedColumns))
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

// AddTableConstraint implements dialect.Generator. SQLite has no
// standalone form for adding constraints after table creation; foreign
// keys are always inlined in CREATE TABLE instead. The migration pipeline
// routes constraint changes on an existing SQLite table through the same
// table-recreation helper used for column type changes instead of calling
// this.
func (g *Generator) AddTableConstraint(*schema.Table, schema.Constraint) string { return "" }

// DropTableConstraint implements dialect.Generator. See AddTableConstraint:
// SQLite has no standalone DROP form either.
func (g *Generator) DropTableConstraint(*schema.Table, schema.Constraint) string { return "" }

// AddColumn implements dialect.Generator.
func (g *Generator) AddColumn(tableName string, col *schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", g.QuoteIdentifier(tableName), g.columnDef(&schema.Table{Name: tableName}, col))
}

// DropColumn implements dialect.Generator.
func (g *Generator) DropColumn(tableName, columnName string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", g.QuoteIdentifier(tableName), g.QuoteIdentifier(columnName))
}

// DropTable implements dialect.Generator.
func (g *Generator) DropTable(tableName string) string {
	return fmt.Sprintf("DROP TABLE %s;", g.QuoteIdentifier(tableName))
}

// DropIndex implements dialect.Generator. SQLite indexes are named
// database-wide, so no owning table is required.
func (g *Generator) DropIndex(_ string, idx *schema.Index) string {
	return fmt.Sprintf("DROP INDEX %s;", g.QuoteIdentifier(idx.Name))
}

// AlterColumnType implements dialect.Generator by delegating to the
// table-recreation dance, assuming the source and target tables share an
// identical column set aside from the one column under cd. Callers that
// hold both the old and new table snapshots should prefer
// AlterColumnTypeWithOldTable, which computes the real intersection.
func (g *Generator) AlterColumnType(table *schema.Table, cd *diff.ColumnDiff, dir dialect.Direction) []string {
	return g.AlterColumnTypeWithOldTable(table, cd, dir, table)
}

// AlterColumnTypeWithOldTable implements dialect.Generator: SQLite lacks
// ALTER COLUMN entirely, so any type change is performed by recreating the
// table under a temporary name in the shape of table (the snapshot the
// migration direction ends in), copying the intersection of its columns
// and otherTable's (by name, in table's column order), then swapping it
// into place.
func (g *Generator) AlterColumnTypeWithOldTable(table *schema.Table, cd *diff.ColumnDiff, dir dialect.Direction, otherTable *schema.Table) []string {
	return g.recreateTable(table.Name, table, otherTable)
}

// recreateTable implements the nine-step table-recreation sequence:
// disable foreign keys, build the replacement table under a temporary
// name, copy rows restricted to columns present in both the old and new
// shapes, drop the original, rename the replacement into place, recreate
// the new table's indexes, then re-enable foreign keys.
func (g *Generator) recreateTable(liveName string, newTable, oldTable *schema.Table) []string {
	tmpName := "new_" + liveName

	oldNames := make(map[string]bool, len(oldTable.Columns))
	for _, c := range oldTable.Columns {
		oldNames[c.Name] = true
	}
	var shared []string
	for _, c := range newTable.Columns {
		if oldNames[c.Name] {
			shared = append(shared, c.Name)
		}
	}

	stmts := []string{
		"PRAGMA foreign_keys=off;",
		"BEGIN TRANSACTION;",
		g.createTableNamed(tmpName, newTable),
		fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s;",
			g.QuoteIdentifier(tmpName), g.quoteColumns(shared), g.quoteColumns(shared), g.QuoteIdentifier(liveName)),
		fmt.Sprintf("DROP TABLE %s;", g.QuoteIdentifier(liveName)),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", g.QuoteIdentifier(tmpName), g.QuoteIdentifier(liveName)),
	}
	for _, idx := range newTable.Indexes {
		stmts = append(stmts, g.CreateIndex(&schema.Table{Name: liveName}, idx))
	}
	stmts = append(stmts, "COMMIT;", "PRAGMA foreign_keys=on;")
	return stmts
}

// RenameColumn implements dialect.Generator using the native SQLite
// 3.25+ form; no table recreation is needed for a pure rename.
func (g *Generator) RenameColumn(table *schema.Table, rc *diff.RenamedColumn, dir dialect.Direction) []string {
	from, to := rc.OldName, rc.NewName
	if dir == dialect.Down {
		from, to = rc.NewName, rc.OldName
	}
	return []string{fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s;", g.QuoteIdentifier(table.Name), g.QuoteIdentifier(from), g.QuoteIdentifier(to))}
}
