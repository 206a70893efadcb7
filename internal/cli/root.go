// Package cli provides the command-line interface for leapexpr.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapexpr/internal/cli/commands"
	"github.com/leapstack-labs/leapexpr/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leapexpr",
		Short: "leapexpr - Formula Expression Compiler",
		Long: `leapexpr compiles spreadsheet-style formula expressions into SQL
executed by DuckDB or PostgreSQL.

Formulas support column references ([age]), arithmetic, comparisons,
string/date/math functions, and if/elseif/else/endif conditionals.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if cfg.Verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			ctx := commands.WithConfig(cmd.Context(), cfg)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Built with Go and DuckDB
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./leapexpr.yaml)")
	rootCmd.PersistentFlags().String("adapter", "", "database adapter (duckdb, postgres)")
	rootCmd.PersistentFlags().String("database", "", "DuckDB path or connection DSN (empty for in-memory)")
	rootCmd.PersistentFlags().String("output", "", "output format (table, json)")
	rootCmd.PersistentFlags().Int("max_depth", 0, "maximum formula nesting depth")
	rootCmd.PersistentFlags().Int("ui_port", 0, "demo UI port")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		commands.NewCompileCmd(),
		commands.NewApplyCmd(),
		commands.NewFunctionsCmd(),
		commands.NewReplCmd(),
		commands.NewUICmd(),
		commands.NewVersionCmd(Version, BuildDate, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
