// Package migrationfs implements the filesystem boundary the core treats
// as opaque (§6.2): it lays out one directory per migration under a
// `migrations/` root, writes the three output artefacts the core
// produces, and maintains the sibling `.schema_snapshot.yaml` recording
// the latest known schema. Grounded on the teacher CLI's file-writing
// conventions (os.MkdirAll, os.WriteFile, path joining via filepath.Join)
// generalized into a reusable writer/reader both the CLI and tests share.
package migrationfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brindlebyte/schemawright/meta"
	"github.com/brindlebyte/schemawright/schema"
	"github.com/brindlebyte/schemawright/schema/syaml"
)

const snapshotFileName = ".schema_snapshot.yaml"

// Store roots all migration I/O at Dir (conventionally "migrations").
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Migration names one migration directory on disk: its sequence version,
// sanitized description, and the directory name that combines them.
type Migration struct {
	Version     string
	Description string
	DirName     string
}

// DirPath joins s.Dir with m.DirName.
func (s *Store) DirPath(m Migration) string {
	return filepath.Join(s.Dir, m.DirName)
}

// NewMigration builds the Migration value for a version/description pair
// without touching the filesystem.
func NewMigration(version, description string) Migration {
	sanitized := SanitizeDescription(description)
	dirName := version
	if sanitized != "" {
		dirName = version + "_" + sanitized
	}
	return Migration{Version: version, Description: sanitized, DirName: dirName}
}

// Write creates the migration directory and writes up.sql, down.sql and
// .meta.yaml into it, then refreshes the sibling schema snapshot to
// newSchema. It returns the directory path written.
func (s *Store) Write(m Migration, upSQL, downSQL string, md *meta.Metadata, newSchema *schema.Schema) (string, error) {
	dir := s.DirPath(m)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("migrationfs: create directory %q: %w", dir, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "up.sql"), []byte(upSQL), 0o644); err != nil {
		return "", fmt.Errorf("migrationfs: write up.sql: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "down.sql"), []byte(downSQL), 0o644); err != nil {
		return "", fmt.Errorf("migrationfs: write down.sql: %w", err)
	}

	metaYAML, err := md.YAML()
	if err != nil {
		return "", fmt.Errorf("migrationfs: render .meta.yaml: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".meta.yaml"), []byte(metaYAML), 0o644); err != nil {
		return "", fmt.Errorf("migrationfs: write .meta.yaml: %w", err)
	}

	if err := s.WriteSnapshot(newSchema); err != nil {
		return "", err
	}

	return dir, nil
}

// ReadPreviousSchema loads the sibling .schema_snapshot.yaml from s.Dir.
// Per §6.2, an absent snapshot is not an error: it is treated as an empty
// schema at version "1.0".
func (s *Store) ReadPreviousSchema() (*schema.Schema, error) {
	path := filepath.Join(s.Dir, snapshotFileName)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return schema.NewSchema(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("migrationfs: open %q: %w", path, err)
	}
	defer f.Close()

	p := syaml.NewParser()
	s2, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("migrationfs: parse %q: %w", path, err)
	}
	return s2, nil
}

// WriteSnapshot overwrites the .schema_snapshot.yaml at s.Dir with s2.
func (s *Store) WriteSnapshot(s2 *schema.Schema) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("migrationfs: create directory %q: %w", s.Dir, err)
	}
	path := filepath.Join(s.Dir, snapshotFileName)
	if err := syaml.WriteFile(path, s2); err != nil {
		return fmt.Errorf("migrationfs: write %q: %w", path, err)
	}
	return nil
}

// List returns every migration directory under s.Dir in ascending version
// order, skipping the snapshot file and anything that doesn't match the
// `YYYYMMDDHHmmss[_description]` convention.
func (s *Store) List() ([]Migration, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("migrationfs: read directory %q: %w", s.Dir, err)
	}

	var migrations []Migration
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		version := name
		description := ""
		if idx := strings.IndexByte(name, '_'); idx != -1 {
			version = name[:idx]
			description = name[idx+1:]
		}
		if len(version) != 14 || !isDigits(version) {
			continue
		}
		migrations = append(migrations, Migration{Version: version, Description: description, DirName: name})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ReadMeta loads and parses the .meta.yaml sidecar for m.
func (s *Store) ReadMeta(m Migration) (*meta.Metadata, error) {
	path := filepath.Join(s.DirPath(m), ".meta.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("migrationfs: read %q: %w", path, err)
	}
	return meta.ParseYAML(data)
}

// ReadSQL loads the up.sql or down.sql body for m, selecting by direction.
func (s *Store) ReadSQL(m Migration, up bool) (string, error) {
	name := "down.sql"
	if up {
		name = "up.sql"
	}
	path := filepath.Join(s.DirPath(m), name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("migrationfs: read %q: %w", path, err)
	}
	return string(data), nil
}
