// Package config loads leapexpr settings from defaults, an optional YAML
// file, LEAPEXPR_ environment variables, and command-line flags, in that
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "leapexpr.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "leapexpr.yml"

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "LEAPEXPR_"

// Config holds the runtime settings of the CLI and demo surfaces.
type Config struct {
	// Adapter is the database adapter type (duckdb, postgres).
	Adapter string `koanf:"adapter"`
	// Database is the DuckDB path (empty for in-memory) or DSN.
	Database string `koanf:"database"`
	// Output selects the render format: table or json.
	Output string `koanf:"output"`
	// MaxDepth bounds formula nesting.
	MaxDepth int `koanf:"max_depth"`
	// UIPort is the demo UI listen port.
	UIPort int `koanf:"ui_port"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// defaults is the base configuration layer.
var defaults = map[string]any{
	"adapter":   "duckdb",
	"database":  "",
	"output":    "table",
	"max_depth": 256,
	"ui_port":   8090,
	"verbose":   false,
}

// Load assembles the configuration. configFile may be empty, in which case
// leapexpr.yaml is searched in the working directory. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configFile == "" {
		configFile = findConfigFile(".")
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}
	return ""
}
