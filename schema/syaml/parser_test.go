package syaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindlebyte/schemawright/schema"
)

const sampleYAML = `
version: "1.2"
enum_recreate_allowed: false
enums:
  status:
    values: [active, inactive, suspended]
tables:
  users:
    columns:
      - name: id
        type: integer
        nullable: false
        auto_increment: true
      - name: email
        type: varchar
        length: 255
        nullable: false
      - name: state
        type: enum
        enum_name: status
        nullable: false
    indexes:
      - name: idx_users_email
        columns: [email]
        unique: true
    constraints:
      - kind: primary_key
        columns: [id]
  orders:
    columns:
      - name: id
        type: integer
        nullable: false
      - name: user_id
        type: integer
        nullable: false
    constraints:
      - kind: primary_key
        columns: [id]
      - kind: foreign_key
        columns: [user_id]
        referenced_table: users
        referenced_columns: [id]
`

func TestParseFullDocument(t *testing.T) {
	p := NewParser()
	s, err := p.Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "1.2", s.Version)
	assert.False(t, s.EnumRecreateAllowed)
	require.Contains(t, s.Enums, "status")
	assert.Equal(t, []string{"active", "inactive", "suspended"}, s.Enums["status"].Values)

	require.Contains(t, s.Tables, "users")
	users := s.Tables["users"]
	require.Len(t, users.Columns, 3)

	id := users.ColumnByName("id")
	require.NotNil(t, id)
	assert.Equal(t, schema.Integer{}, id.Type)
	assert.True(t, id.AutoIncrement)

	email := users.ColumnByName("email")
	require.NotNil(t, email)
	assert.Equal(t, schema.Varchar{Length: 255}, email.Type)

	state := users.ColumnByName("state")
	require.NotNil(t, state)
	assert.Equal(t, schema.Enum{Name: "status"}, state.Type)

	require.Len(t, users.Indexes, 1)
	assert.Equal(t, "idx_users_email", users.Indexes[0].Name)
	assert.True(t, users.Indexes[0].Unique)

	require.Len(t, users.Constraints, 1)
	assert.Equal(t, schema.PrimaryKey{Columns: []string{"id"}}, users.Constraints[0])

	orders := s.Tables["orders"]
	require.Len(t, orders.Constraints, 2)
	fk, ok := orders.Constraints[1].(schema.ForeignKey)
	require.True(t, ok)
	assert.Equal(t, "users", fk.ReferencedTable)
}

func TestParseRejectsUnknownEnum(t *testing.T) {
	const doc = `
version: "1.0"
tables:
  users:
    columns:
      - name: state
        type: enum
        enum_name: missing
`
	p := NewParser()
	_, err := p.Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared enum")
}

func TestParseRejectsTableWithNoColumns(t *testing.T) {
	const doc = `
version: "1.0"
tables:
  users:
    columns: []
`
	p := NewParser()
	_, err := p.Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns")
}

func TestParseRejectsIndexOnMissingColumn(t *testing.T) {
	const doc = `
version: "1.0"
tables:
  users:
    columns:
      - name: id
        type: integer
    indexes:
      - name: idx_bad
        columns: [nonexistent]
`
	p := NewParser()
	_, err := p.Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent column")
}

func TestParseRejectsForeignKeyMissingReferencedTable(t *testing.T) {
	const doc = `
version: "1.0"
tables:
  orders:
    columns:
      - name: user_id
        type: integer
    constraints:
      - kind: foreign_key
        columns: [user_id]
        referenced_columns: [id]
`
	p := NewParser()
	_, err := p.Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "referenced_table")
}

func TestParseRejectsDuplicateColumnName(t *testing.T) {
	const doc = `
version: "1.0"
tables:
  users:
    columns:
      - name: id
        type: integer
      - name: id
        type: varchar
        length: 10
`
	p := NewParser()
	_, err := p.Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestParseVarcharRequiresLength(t *testing.T) {
	const doc = `
version: "1.0"
tables:
  users:
    columns:
      - name: email
        type: varchar
`
	p := NewParser()
	_, err := p.Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires length")
}
