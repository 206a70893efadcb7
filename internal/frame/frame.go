// Package frame applies compiled formula expressions to database tables as
// new columns.
package frame

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapexpr/internal/adapter"
	"github.com/leapstack-labs/leapexpr/pkg/formula"
)

// Executor is the slice of the adapter interface the wrapper needs.
type Executor interface {
	Exec(ctx context.Context, sql string) error
	Query(ctx context.Context, sql string) (*adapter.Rows, error)
}

// Frame wraps a source table with a compiler so expressions can be applied
// as new columns.
type Frame struct {
	db       Executor
	compiler *formula.Compiler
}

// New creates a frame over an executor and compiler.
func New(db Executor, compiler *formula.Compiler) *Frame {
	return &Frame{db: db, compiler: compiler}
}

// ApplyExpression compiles the expression and materializes the source table
// with the result as a new column, replacing the table in place.
func (f *Frame) ApplyExpression(ctx context.Context, table, expression, outputColumn string) error {
	sqlExpr, err := f.compile(expression)
	if err != nil {
		return err
	}
	stmt := applyStatement(table, sqlExpr, outputColumn)
	if err := f.db.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to apply expression to %s: %w", table, err)
	}
	return nil
}

// Preview compiles the expression and selects the source table with the
// result as a new column, limited to the first n rows.
func (f *Frame) Preview(ctx context.Context, table, expression, outputColumn string, limit int) (*adapter.Rows, error) {
	sqlExpr, err := f.compile(expression)
	if err != nil {
		return nil, err
	}
	stmt := previewStatement(table, sqlExpr, outputColumn, limit)
	rows, err := f.db.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to preview expression on %s: %w", table, err)
	}
	return rows, nil
}

func (f *Frame) compile(expression string) (string, error) {
	e, err := f.compiler.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("failed to compile expression: %w", err)
	}
	return e.ToSQL(), nil
}

// applyStatement builds the in-place materialization statement.
func applyStatement(table, sqlExpr, outputColumn string) string {
	return fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT *, %s AS %s FROM %s",
		quoteIdent(table), sqlExpr, quoteIdent(outputColumn), quoteIdent(table),
	)
}

// previewStatement builds the non-destructive preview query.
func previewStatement(table, sqlExpr, outputColumn string, limit int) string {
	return fmt.Sprintf(
		"SELECT *, %s AS %s FROM %s LIMIT %d",
		sqlExpr, quoteIdent(outputColumn), quoteIdent(table), limit,
	)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
