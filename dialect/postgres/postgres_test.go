package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

func TestCreateTableScenario1(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{
		Name: "users",
		Columns: []*schema.Column{
			{Name: "id", Type: schema.Integer{}, Nullable: false},
			{Name: "email", Type: schema.Varchar{Length: 255}, Nullable: false},
		},
		Constraints: []schema.Constraint{schema.PrimaryKey{Columns: []string{"id"}}},
	}

	stmt, fkStmts := g.CreateTable(table)
	assert.Equal(t, "CREATE TABLE users (\n    id INTEGER NOT NULL,\n    email VARCHAR(255) NOT NULL,\n    PRIMARY KEY (id)\n);", stmt)
	assert.Empty(t, fkStmts)
}

func TestDropTableScenario1(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "DROP TABLE users;", g.DropTable("users"))
}

func TestAlterColumnTypeTextToIntegerUsesUsingClauseScenario4(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "products"}
	cd := &diff.ColumnDiff{
		ColumnName: "price",
		OldColumn:  &schema.Column{Name: "price", Type: schema.Text{}},
		NewColumn:  &schema.Column{Name: "price", Type: schema.Integer{}},
		Changes:    []diff.ColumnChange{{Kind: diff.TypeChanged, OldType: schema.Text{}, NewType: schema.Integer{}}},
	}

	stmts := g.AlterColumnType(table, cd, dialect.Up)
	assert.Equal(t, []string{"ALTER TABLE products ALTER COLUMN price TYPE INTEGER USING price::INTEGER;"}, stmts)
}

func TestAlterColumnTypeIntegerWideningNoUsingClause(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "users"}
	eight := uint8(8)
	cd := &diff.ColumnDiff{
		ColumnName: "id",
		OldColumn:  &schema.Column{Name: "id", Type: schema.Integer{}},
		NewColumn:  &schema.Column{Name: "id", Type: schema.Integer{Precision: &eight}},
		Changes:    []diff.ColumnChange{{Kind: diff.TypeChanged}},
	}

	stmts := g.AlterColumnType(table, cd, dialect.Up)
	assert.Equal(t, []string{"ALTER TABLE users ALTER COLUMN id TYPE BIGINT;"}, stmts)
}

func TestRenameColumnScenario6UpThenDown(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "users"}
	rc := &diff.RenamedColumn{OldName: "age", NewName: "age_years"}

	up := g.RenameColumn(table, rc, dialect.Up)
	assert.Equal(t, []string{"ALTER TABLE users RENAME COLUMN age TO age_years;"}, up)

	down := g.RenameColumn(table, rc, dialect.Down)
	assert.Equal(t, []string{"ALTER TABLE users RENAME COLUMN age_years TO age;"}, down)
}

func TestRenamePlusTypeChangeScenario6(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "users"}
	cd := &diff.ColumnDiff{
		ColumnName: "age_years",
		OldColumn:  &schema.Column{Name: "age", Type: schema.Integer{}},
		NewColumn:  &schema.Column{Name: "age_years", Type: schema.Varchar{Length: 50}},
		Changes:    []diff.ColumnChange{{Kind: diff.TypeChanged}},
	}

	up := g.AlterColumnType(table, cd, dialect.Up)
	assert.Equal(t, []string{"ALTER TABLE users ALTER COLUMN age_years TYPE VARCHAR(50);"}, up)

	down := g.AlterColumnType(table, cd, dialect.Down)
	assert.Equal(t, []string{"ALTER TABLE users ALTER COLUMN age_years TYPE INTEGER;"}, down)
}

func TestSerialDanceFalseToTrue(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "users"}
	cd := &diff.ColumnDiff{
		ColumnName: "id",
		OldColumn:  &schema.Column{Name: "id", Type: schema.Integer{}, AutoIncrement: false},
		NewColumn:  &schema.Column{Name: "id", Type: schema.Integer{}, AutoIncrement: true},
		Changes:    []diff.ColumnChange{{Kind: diff.AutoIncrementChanged}},
	}

	stmts := g.AlterColumnType(table, cd, dialect.Up)
	assert.Equal(t, []string{
		"CREATE SEQUENCE IF NOT EXISTS users_id_seq;",
		"SELECT setval('users_id_seq', COALESCE((SELECT MAX(id) FROM users), 0), true);",
		"ALTER TABLE users ALTER COLUMN id SET DEFAULT nextval('users_id_seq');",
		"ALTER SEQUENCE users_id_seq OWNED BY users.id;",
	}, stmts)
}

func TestSerialDanceTrueToFalse(t *testing.T) {
	g := NewGenerator()
	table := &schema.Table{Name: "users"}
	cd := &diff.ColumnDiff{
		ColumnName: "id",
		OldColumn:  &schema.Column{Name: "id", Type: schema.Integer{}, AutoIncrement: true},
		NewColumn:  &schema.Column{Name: "id", Type: schema.Integer{}, AutoIncrement: false},
		Changes:    []diff.ColumnChange{{Kind: diff.AutoIncrementChanged}},
	}

	stmts := g.AlterColumnType(table, cd, dialect.Up)
	assert.Equal(t, []string{
		"ALTER TABLE users ALTER COLUMN id DROP DEFAULT;",
		"DROP SEQUENCE IF EXISTS users_id_seq CASCADE;",
	}, stmts)
}

func TestRecreateEnumTypeSequence(t *testing.T) {
	g := NewGenerator()
	ed := &diff.EnumDiff{
		EnumName:  "status",
		NewValues: []string{"active", "inactive"},
		Columns:   []schema.ColumnRef{{Table: "users", Column: "status"}},
	}

	stmts := g.RecreateEnumType(ed)
	assert.Equal(t, []string{
		"ALTER TYPE status RENAME TO status_old;",
		"CREATE TYPE status AS ENUM ('active', 'inactive');",
		"ALTER TABLE users ALTER COLUMN status TYPE status USING status::text::status;",
		"DROP TYPE status_old;",
	}, stmts)
}

func TestQuoteIdentifierQuotesOnlyWhenNeeded(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "users", g.QuoteIdentifier("users"))
	assert.Equal(t, `"User Table"`, g.QuoteIdentifier("User Table"))
}
