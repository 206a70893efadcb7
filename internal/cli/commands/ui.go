package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapexpr/internal/ui"
	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

// NewUICmd creates the ui command.
func NewUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Serve the web playground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			server := ui.NewServer(ui.Config{
				Compiler: compilerFrom(cmd),
				Registry: funcs.Builtin(),
				Port:     cfg.UIPort,
				Logger:   slog.Default(),
			})
			return server.Serve(cmd.Context())
		},
	}
}
