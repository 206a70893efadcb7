package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapexpr/internal/config"
)

// runCommand executes a command with args and captures stdout.
func runCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SetContext(WithConfig(context.Background(), cfg))
	err := cmd.Execute()
	return out.String(), err
}

func testConfig() *config.Config {
	return &config.Config{Adapter: "duckdb", Output: "table", MaxDepth: 256}
}

func TestCompileCommand(t *testing.T) {
	out, err := runCommand(t, NewCompileCmd(), testConfig(), "[a] + [b] * 2")
	require.NoError(t, err)
	assert.Equal(t, "(\"a\" + (\"b\" * 2))\n", out)
}

func TestCompileCommandConditional(t *testing.T) {
	out, err := runCommand(t, NewCompileCmd(), testConfig(),
		`if [age] < 18 then "minor" else "adult" endif`)
	require.NoError(t, err)
	assert.Contains(t, out, `CASE WHEN ("age" < 18) THEN 'minor' ELSE 'adult' END`)
}

func TestCompileCommandJSONOutput(t *testing.T) {
	cfg := testConfig()
	cfg.Output = "json"
	out, err := runCommand(t, NewCompileCmd(), cfg, "[a] + 1")
	require.NoError(t, err)
	assert.Contains(t, out, `"sql":"(\"a\" + 1)"`)
}

func TestCompileCommandError(t *testing.T) {
	_, err := runCommand(t, NewCompileCmd(), testConfig(), "if [a] then")
	require.Error(t, err)
}

func TestCompileCommandRequiresArg(t *testing.T) {
	_, err := runCommand(t, NewCompileCmd(), testConfig())
	require.Error(t, err)
}

func TestFunctionsCommand(t *testing.T) {
	out, err := runCommand(t, NewFunctionsCmd(), testConfig())
	require.NoError(t, err)
	assert.Contains(t, out, "concat")
	assert.Contains(t, out, "string")
	assert.Contains(t, out, "pl.col")
}

func TestFunctionsCommandCategoryFilter(t *testing.T) {
	out, err := runCommand(t, NewFunctionsCmd(), testConfig(), "--category", "math")
	require.NoError(t, err)
	assert.Contains(t, out, "sqrt")
	assert.NotContains(t, out, "concat")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, NewVersionCmd("1.2.3", "today", "abc"), testConfig())
	require.NoError(t, err)
	assert.Contains(t, out, "leapexpr 1.2.3")
	assert.Contains(t, out, "abc")
}

func TestConfigFromFallsBackToDefaults(t *testing.T) {
	cmd := NewCompileCmd()
	cmd.SetContext(context.Background())
	cfg := configFrom(cmd)
	require.NotNil(t, cfg)
	assert.Equal(t, "duckdb", cfg.Adapter)
}
