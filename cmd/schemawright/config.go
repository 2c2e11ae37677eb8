package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// projectConfig mirrors an optional `.schemawright.toml` at the project
// root, read with the teacher's TOML library. loadProjectConfig fills in
// defaults (output_dir "migrations", default_dialect "postgresql",
// allow_destructive false) so a missing config file is equivalent to one
// that declares nothing.
type projectConfig struct {
	OutputDir       string `toml:"output_dir"`
	DefaultDialect  string `toml:"default_dialect"`
	AllowDestructive bool  `toml:"allow_destructive"`
}

const defaultConfigPath = ".schemawright.toml"
const defaultOutputDir = "migrations"

func loadProjectConfig(path string) (*projectConfig, error) {
	cfg := &projectConfig{OutputDir: defaultOutputDir, DefaultDialect: "postgresql"}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	return cfg, nil
}
