package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapexpr/internal/adapter"
)

// renderRows prints a result set as a bordered table.
func renderRows(w io.Writer, rows *adapter.Rows) error {
	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, c := range cols {
		headerRow[i] = c
	}
	t.AppendHeader(headerRow)

	values := make([]any, len(cols))
	scanTargets := make([]any, len(cols))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(table.Row, len(cols))
		for i, v := range values {
			row[i] = renderValue(v)
		}
		t.AppendRow(row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed while iterating rows: %w", err)
	}

	t.Render()
	return nil
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
