package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  Constraint
		equal bool
	}{
		{"primary key same columns", PrimaryKey{Columns: []string{"id"}}, PrimaryKey{Columns: []string{"id"}}, true},
		{"primary key differing order", PrimaryKey{Columns: []string{"a", "b"}}, PrimaryKey{Columns: []string{"b", "a"}}, false},
		{"unique vs primary key never equal", Unique{Columns: []string{"id"}}, PrimaryKey{Columns: []string{"id"}}, false},
		{
			"check same expression",
			Check{Columns: []string{"age"}, CheckExpression: "age >= 0"},
			Check{Columns: []string{"age"}, CheckExpression: "age >= 0"},
			true,
		},
		{
			"foreign key same shape",
			ForeignKey{Columns: []string{"user_id"}, ReferencedTable: "users", ReferencedColumns: []string{"id"}},
			ForeignKey{Columns: []string{"user_id"}, ReferencedTable: "users", ReferencedColumns: []string{"id"}},
			true,
		},
		{
			"foreign key differing referenced table",
			ForeignKey{Columns: []string{"user_id"}, ReferencedTable: "users", ReferencedColumns: []string{"id"}},
			ForeignKey{Columns: []string{"user_id"}, ReferencedTable: "accounts", ReferencedColumns: []string{"id"}},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
		})
	}
}

func TestConstraintsEqualIsOrderIndependent(t *testing.T) {
	a := []Constraint{
		PrimaryKey{Columns: []string{"id"}},
		Unique{Columns: []string{"email"}},
	}
	b := []Constraint{
		Unique{Columns: []string{"email"}},
		PrimaryKey{Columns: []string{"id"}},
	}

	assert.True(t, ConstraintsEqual(a, b))
}

func TestConstraintsEqualDetectsCountMismatch(t *testing.T) {
	a := []Constraint{PrimaryKey{Columns: []string{"id"}}}
	b := []Constraint{}

	assert.False(t, ConstraintsEqual(a, b))
}
