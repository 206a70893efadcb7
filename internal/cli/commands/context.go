// Package commands implements the leapexpr CLI commands.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapexpr/internal/config"
	"github.com/leapstack-labs/leapexpr/pkg/formula"
	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

// configKey stores the loaded config in the command context.
type configKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom retrieves the config attached by the root command, falling back
// to defaults when a command runs outside the root (tests).
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		return &config.Config{Adapter: "duckdb", Output: "table", MaxDepth: formula.DefaultMaxDepth}
	}
	return cfg
}

// compilerFrom builds a compiler honoring the configured nesting depth.
func compilerFrom(cmd *cobra.Command) *formula.Compiler {
	cfg := configFrom(cmd)
	return formula.New(funcs.Builtin(), formula.WithMaxDepth(cfg.MaxDepth))
}
