package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Adapter)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, 256, cfg.MaxDepth)
	assert.Equal(t, 8090, cfg.UIPort)
	assert.False(t, cfg.Verbose)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := "adapter: postgres\ndatabase: postgres://localhost/demo\nmax_depth: 64\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Adapter)
	assert.Equal(t, "postgres://localhost/demo", cfg.Database)
	assert.Equal(t, 64, cfg.MaxDepth)
	// Untouched keys keep their defaults.
	assert.Equal(t, "table", cfg.Output)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEAPEXPR_OUTPUT", "json")
	t.Setenv("LEAPEXPR_MAX_DEPTH", "32")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 32, cfg.MaxDepth)
}

func TestLoadFlagsWinOverEnv(t *testing.T) {
	t.Setenv("LEAPEXPR_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "table", "")
	require.NoError(t, flags.Parse([]string{"--output", "table"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
