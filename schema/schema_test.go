package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSchemaDefaultsToVersionOne(t *testing.T) {
	s := NewSchema()
	assert.Equal(t, "1.0", s.Version)
	assert.Empty(t, s.Tables)
	assert.Empty(t, s.Enums)
	assert.False(t, s.EnumRecreateAllowed)
}

func TestTableColumnByName(t *testing.T) {
	tbl := &Table{
		Name: "users",
		Columns: []*Column{
			{Name: "id", Type: Integer{}},
			{Name: "email", Type: Varchar{Length: 255}},
		},
	}

	assert.Same(t, tbl.Columns[1], tbl.ColumnByName("email"))
	assert.Nil(t, tbl.ColumnByName("missing"))
}

func TestColumnEqualIgnoresRenamedFrom(t *testing.T) {
	a := &Column{Name: "age_years", Type: Integer{}, Nullable: true}
	b := &Column{Name: "age_years", Type: Integer{}, Nullable: true, RenamedFrom: "age"}

	assert.True(t, a.Equal(b))
}

func TestColumnEqualDetectsDefaultValueDifference(t *testing.T) {
	one := "1"
	zero := "0"
	a := &Column{Name: "active", Type: Boolean{}, DefaultValue: &one}
	b := &Column{Name: "active", Type: Boolean{}, DefaultValue: &zero}

	assert.False(t, a.Equal(b))
}

func TestEnumColumnsReferencingScansAllTables(t *testing.T) {
	tables := map[string]*Table{
		"users": {
			Name: "users",
			Columns: []*Column{
				{Name: "id", Type: Integer{}},
				{Name: "status", Type: Enum{Name: "user_status"}},
			},
		},
		"orders": {
			Name: "orders",
			Columns: []*Column{
				{Name: "status", Type: Enum{Name: "order_status"}},
			},
		},
	}

	refs := EnumColumnsReferencing(tables, []string{"orders", "users"}, "user_status")
	assert.Equal(t, []ColumnRef{{Table: "users", Column: "status"}}, refs)
}
