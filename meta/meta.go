package meta

import (
	"gopkg.in/yaml.v3"

	"github.com/brindlebyte/schemawright/destructive"
	"github.com/brindlebyte/schemawright/schema"
)

// ColumnsDroppedEntry is the YAML projection of destructive.ColumnsDropped.
type ColumnsDroppedEntry struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
}

// ColumnRenamedEntry is the YAML projection of destructive.ColumnRenamed.
type ColumnRenamedEntry struct {
	Table string `yaml:"table"`
	Old   string `yaml:"old"`
	New   string `yaml:"new"`
}

// DestructiveChanges is the YAML projection of a destructive.Report. A
// report with no destructive entries marshals as an empty mapping `{}`,
// since every field carries omitempty.
type DestructiveChanges struct {
	TablesDropped  []string              `yaml:"tables_dropped,omitempty"`
	ColumnsDropped []ColumnsDroppedEntry `yaml:"columns_dropped,omitempty"`
	ColumnsRenamed []ColumnRenamedEntry  `yaml:"columns_renamed,omitempty"`
	EnumsDropped   []string              `yaml:"enums_dropped,omitempty"`
	EnumsRecreated []string              `yaml:"enums_recreated,omitempty"`
}

func projectDestructive(r *destructive.Report) DestructiveChanges {
	if r == nil {
		return DestructiveChanges{}
	}
	dc := DestructiveChanges{
		TablesDropped:  r.TablesDropped,
		EnumsDropped:   r.EnumsDropped,
		EnumsRecreated: r.EnumsRecreated,
	}
	for _, cd := range r.ColumnsDropped {
		dc.ColumnsDropped = append(dc.ColumnsDropped, ColumnsDroppedEntry{Table: cd.Table, Columns: cd.Columns})
	}
	for _, cr := range r.ColumnsRenamed {
		dc.ColumnsRenamed = append(dc.ColumnsRenamed, ColumnRenamedEntry{Table: cr.Table, Old: cr.Old, New: cr.New})
	}
	return dc
}

// Metadata is the `.meta.yaml` sidecar document for one migration. Field
// order matches the declared key order exactly: version, description,
// dialect, checksum, destructive_changes.
type Metadata struct {
	Version            string             `yaml:"version"`
	Description        string             `yaml:"description"`
	Dialect            string             `yaml:"dialect"`
	Checksum           string             `yaml:"checksum"`
	DestructiveChanges DestructiveChanges `yaml:"destructive_changes"`
}

// Build computes the checksum of s and assembles the metadata document
// for one migration identified by version (YYYYMMDDHHmmss) and
// description, targeting dialectName, with its destructive impact
// summarized from report.
func Build(version, description string, dialectName schema.Dialect, s *schema.Schema, report *destructive.Report) (*Metadata, error) {
	sum, err := Checksum(s)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Version:            version,
		Description:        description,
		Dialect:            string(dialectName),
		Checksum:           sum,
		DestructiveChanges: projectDestructive(report),
	}, nil
}

// YAML renders m as a YAML document.
func (m *Metadata) YAML() (string, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ParseYAML parses a `.meta.yaml` document. Per §6.4, legacy metadata with
// no destructive_changes key is recognised as "destructive-unknown" simply
// by leaving DestructiveChanges at its zero value; callers distinguish
// that case from "no destructive changes" by checking for the raw key
// themselves if they need to.
func ParseYAML(data []byte) (*Metadata, error) {
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
