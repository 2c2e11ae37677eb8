package syaml

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brindlebyte/schemawright/schema"
)

// Parser reads schemawright YAML schema files.
type Parser struct{}

// NewParser creates a new YAML schema parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at path and parses it as a YAML schema.
func (p *Parser) ParseFile(path string) (*schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("syaml: open file %q: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse reads YAML content from r and returns the corresponding
// schema.Schema. Identical input always yields an identical Schema value,
// since nothing here depends on map iteration order.
func (p *Parser) Parse(r io.Reader) (*schema.Schema, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("syaml: decode error: %w", err)
	}

	return newConverter(&doc).convert()
}
