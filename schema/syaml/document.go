// Package syaml provides the YAML schema parser and serializer for
// schemawright: it reads a dialect-agnostic schema definition from a
// YAML document and converts it into the canonical schema.Schema
// representation the migration core operates on, and converts a
// schema.Schema back into that same YAML shape for the filesystem
// snapshot.
package syaml

// yamlDocument is the top-level YAML document.
type yamlDocument struct {
	Version             string               `yaml:"version"`
	EnumRecreateAllowed bool                 `yaml:"enum_recreate_allowed"`
	Enums               map[string]yamlEnum  `yaml:"enums"`
	Tables              map[string]yamlTable `yaml:"tables"`
}

// yamlEnum maps enums.<name>.
type yamlEnum struct {
	Values []string `yaml:"values"`
}

// yamlTable maps tables.<name>.
type yamlTable struct {
	Columns     []yamlColumn     `yaml:"columns"`
	Indexes     []yamlIndex      `yaml:"indexes"`
	Constraints []yamlConstraint `yaml:"constraints"`
	RenamedFrom string           `yaml:"renamed_from"`
}

// yamlColumn maps tables.<name>.columns[]. The Type-discriminated fields
// below (Precision, Length, Scale, WithTimeZone, Kind, Params) are
// validated against the declared Type by resolveColumnType; unused fields
// for a given Type are simply ignored on read, same as the teacher's TOML
// shortcut handling of unrelated columns.
type yamlColumn struct {
	Name          string  `yaml:"name"`
	Type          string  `yaml:"type"`
	Nullable      bool    `yaml:"nullable"`
	DefaultValue  *string `yaml:"default"`
	AutoIncrement bool    `yaml:"auto_increment"`
	RenamedFrom   string  `yaml:"renamed_from"`

	Precision    *uint8 `yaml:"precision"`
	Length       uint32 `yaml:"length"`
	Scale        uint8  `yaml:"scale"`
	WithTimeZone *bool  `yaml:"with_time_zone"`

	// EnumName names the enums.<name> entry for type: enum.
	EnumName string `yaml:"enum_name"`

	// Kind and Params back type: dialect_specific.
	Kind   string `yaml:"kind"`
	Params string `yaml:"params"`
}

// yamlIndex maps tables.<name>.indexes[].
type yamlIndex struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Unique  bool     `yaml:"unique"`
}

// yamlConstraint maps tables.<name>.constraints[]. Kind selects which of
// the remaining fields apply: primary_key/unique use Columns only, check
// uses Columns and CheckExpression, foreign_key uses Columns,
// ReferencedTable and ReferencedColumns.
type yamlConstraint struct {
	Kind              string   `yaml:"kind"`
	Columns           []string `yaml:"columns"`
	CheckExpression   string   `yaml:"check_expression"`
	ReferencedTable   string   `yaml:"referenced_table"`
	ReferencedColumns []string `yaml:"referenced_columns"`
}
