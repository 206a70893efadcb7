package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapexpr/internal/adapter"
	"github.com/leapstack-labs/leapexpr/internal/frame"
)

// NewApplyCmd creates the apply command.
func NewApplyCmd() *cobra.Command {
	var (
		csvPath   string
		tableName string
		outputCol string
		limit     int
		persist   bool
	)

	cmd := &cobra.Command{
		Use:   "apply <expression>",
		Short: "Apply an expression to a table as a new column",
		Long: `Apply compiles the expression and evaluates it against a table,
showing the result as a new column. With --csv the file is loaded into the
table first. With --persist the table is rewritten in place instead of
previewed.`,
		Example: `  leapexpr apply --csv people.csv --table people --column bucket \
      'if [age] < 18 then "minor" else "adult" endif'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(cmd)

			a, err := adapter.New(ctx, adapter.Config{
				Type: cfg.Adapter,
				Path: cfg.Database,
				DSN:  cfg.Database,
			})
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if csvPath != "" {
				if err := a.LoadCSV(ctx, tableName, csvPath); err != nil {
					return fmt.Errorf("failed to load %s: %w", csvPath, err)
				}
			}

			f := frame.New(a, compilerFrom(cmd))

			if persist {
				if err := f.ApplyExpression(ctx, tableName, args[0], outputCol); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied expression to %s as %q\n", tableName, outputCol)
				return err
			}

			rows, err := f.Preview(ctx, tableName, args[0], outputCol, limit)
			if err != nil {
				return err
			}
			defer func() { _ = rows.Close() }()
			return renderRows(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to load into the table first")
	cmd.Flags().StringVar(&tableName, "table", "data", "table to apply the expression to")
	cmd.Flags().StringVar(&outputCol, "column", "output", "name of the new column")
	cmd.Flags().IntVar(&limit, "limit", 20, "rows to show in preview mode")
	cmd.Flags().BoolVar(&persist, "persist", false, "rewrite the table instead of previewing")

	return cmd
}
