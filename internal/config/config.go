// Package config loads the optional project configuration file. Every
// field has a usable default: a project with no config file imports with
// stock settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

type Config struct {
	Project ProjectConfig
	Import  ImportConfig
}

type ProjectConfig struct {
	EditorVersion string `hcl:"editor_version,optional"`
	ModelVersion  string `hcl:"model_version,optional"`
}

type ImportConfig struct {
	// SkipGroups names file groups to leave out of an import run
	// ("climate", "connect", ...).
	SkipGroups []string `hcl:"skip_groups,optional"`
}

// fileConfig is the on-disk shape; both blocks are optional.
type fileConfig struct {
	Project *ProjectConfig `hcl:"project,block"`
	Import  *ImportConfig  `hcl:"import,block"`
}

func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			EditorVersion: "1.0.0",
			ModelVersion:  "61.0",
		},
	}
}

// Load reads path, falling back to defaults when the file is absent.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if fc.Project != nil {
		if fc.Project.EditorVersion != "" {
			cfg.Project.EditorVersion = fc.Project.EditorVersion
		}
		if fc.Project.ModelVersion != "" {
			cfg.Project.ModelVersion = fc.Project.ModelVersion
		}
	}
	if fc.Import != nil {
		cfg.Import = *fc.Import
	}
	return cfg, nil
}

func (c *Config) SkipsGroup(name string) bool {
	for _, g := range c.Import.SkipGroups {
		if g == name {
			return true
		}
	}
	return false
}
