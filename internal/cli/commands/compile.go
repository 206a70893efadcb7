package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCompileCmd creates the compile command.
func NewCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <expression>",
		Short: "Compile a formula expression and print the resulting SQL",
		Example: `  leapexpr compile '[a] + [b] * 2'
  leapexpr compile 'if [age] < 18 then "minor" else "adult" endif'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compiled, err := compilerFrom(cmd).Compile(args[0])
			if err != nil {
				return err
			}

			if configFrom(cmd).Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(map[string]string{
					"expression": args[0],
					"sql":        compiled.ToSQL(),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), compiled.ToSQL())
			return err
		},
	}
	return cmd
}
