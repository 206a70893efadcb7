package commands

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

// NewFunctionsCmd creates the functions command.
func NewFunctionsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List the functions available in formula expressions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview := funcs.Builtin().Overview()

			if category != "" {
				filtered := overview[:0]
				for _, cat := range overview {
					if strings.EqualFold(cat.Category, category) {
						filtered = append(filtered, cat)
					}
				}
				overview = filtered
			}

			if configFrom(cmd).Output == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(overview)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Category", "Function", "Parameters", "Description"})
			for _, cat := range overview {
				for _, f := range cat.Functions {
					t.AppendRow(table.Row{cat.Category, f.Name, strings.Join(f.Params, ", "), f.Doc})
				}
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show one category")
	return cmd
}
