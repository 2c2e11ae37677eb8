package schema

// Constraint is the tagged-variant sum type for table-level constraints.
// Constraints are anonymous: two constraints are the same constraint iff
// their full values are equal, independent of any generated SQL name.
type Constraint interface {
	constraint()
	// Equal reports structural equality against other.
	Equal(other Constraint) bool
}

// PrimaryKey constrains the named columns to uniquely identify a row.
type PrimaryKey struct {
	Columns []string
}

func (PrimaryKey) constraint() {}
func (p PrimaryKey) Equal(o Constraint) bool {
	c, ok := o.(PrimaryKey)
	return ok && stringSliceEqual(p.Columns, c.Columns)
}

// Unique constrains the named columns to hold no duplicate value tuples.
type Unique struct {
	Columns []string
}

func (Unique) constraint() {}
func (u Unique) Equal(o Constraint) bool {
	c, ok := o.(Unique)
	return ok && stringSliceEqual(u.Columns, c.Columns)
}

// Check constrains the named columns by a dialect-native boolean
// expression.
type Check struct {
	Columns        []string
	CheckExpression string
}

func (Check) constraint() {}
func (c Check) Equal(o Constraint) bool {
	v, ok := o.(Check)
	return ok && stringSliceEqual(c.Columns, v.Columns) && c.CheckExpression == v.CheckExpression
}

// ForeignKey constrains the named columns to reference a row in another
// table's referenced columns.
type ForeignKey struct {
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
}

func (ForeignKey) constraint() {}
func (f ForeignKey) Equal(o Constraint) bool {
	v, ok := o.(ForeignKey)
	return ok && stringSliceEqual(f.Columns, v.Columns) &&
		f.ReferencedTable == v.ReferencedTable &&
		stringSliceEqual(f.ReferencedColumns, v.ReferencedColumns)
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ConstraintsEqual reports whether two constraint slices contain the same
// constraints by structural value, ignoring order — constraints are
// set-like within a table.
func ConstraintsEqual(a, b []Constraint) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ca := range a {
		found := false
		for j, cb := range b {
			if used[j] {
				continue
			}
			if ca.Equal(cb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
