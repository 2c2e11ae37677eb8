package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

func TestAlterColumnTypeIntegerWideningScenario2(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "users"}
	eight := uint8(8)
	cd := &diff.ColumnDiff{
		ColumnName: "id",
		OldColumn:  &schema.Column{Name: "id", Type: schema.Integer{}, Nullable: false},
		NewColumn:  &schema.Column{Name: "id", Type: schema.Integer{Precision: &eight}, Nullable: false},
		Changes:    []diff.ColumnChange{{Kind: diff.TypeChanged}},
	}

	stmts := g.AlterColumnType(table, cd, dialect.Up)
	assert.Equal(t, []string{"ALTER TABLE users MODIFY COLUMN id BIGINT NOT NULL;"}, stmts)
}

func TestRenameColumnRequiresFullDefinitionScenario6(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "users"}
	rc := &diff.RenamedColumn{
		OldName:   "age",
		NewName:   "age_years",
		OldColumn: &schema.Column{Name: "age", Type: schema.Integer{}, Nullable: false},
		NewColumn: &schema.Column{Name: "age_years", Type: schema.Varchar{Length: 50}, Nullable: false},
	}

	up := g.RenameColumn(table, rc, dialect.Up)
	assert.Equal(t, []string{"ALTER TABLE users CHANGE COLUMN age age_years INTEGER NOT NULL;"}, up)

	down := g.RenameColumn(table, rc, dialect.Down)
	assert.Equal(t, []string{"ALTER TABLE users CHANGE COLUMN age_years age INTEGER NOT NULL;"}, down)
}

func TestCreateTableWithEnumInlinesValues(t *testing.T) {
	g := NewGenerator()
	g.SetEnums(map[string]*schema.EnumDefinition{
		"status": {Name: "status", Values: []string{"active", "inactive"}},
	})
	table := &schema.Table{
		Name: "users",
		Columns: []*schema.Column{
			{Name: "status", Type: schema.Enum{Name: "status"}, Nullable: false},
		},
	}

	stmt, _ := g.CreateTable(table)
	assert.Contains(t, stmt, "ENUM('active', 'inactive')")
}

func TestDropIndexIncludesTableName(t *testing.T) {
	g := NewGenerator()
	idx := &schema.Index{Name: "idx_users_email"}
	assert.Equal(t, "DROP INDEX idx_users_email ON users;", g.DropIndex("users", idx))
}
