package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default().Project.EditorVersion, cfg.Project.EditorVersion)
	assert.False(t, cfg.SkipsGroup("climate"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basindb.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
project {
  editor_version = "2.1.0"
  model_version  = "60.5"
}

import {
  skip_groups = ["climate", "recall"]
}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", cfg.Project.EditorVersion)
	assert.Equal(t, "60.5", cfg.Project.ModelVersion)
	assert.True(t, cfg.SkipsGroup("climate"))
	assert.False(t, cfg.SkipsGroup("soils"))
}
