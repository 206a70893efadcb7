package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// NewReplCmd creates the repl command.
func NewReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively compile formula expressions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd)
		},
	}
}

func runRepl(cmd *cobra.Command) error {
	compiler := compilerFrom(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "leapexpr> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "leapexpr REPL")
	_, _ = fmt.Fprintln(out, "Type a formula to compile it, .functions for the reference, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			switch line {
			case ".quit", ".exit":
				return nil
			case ".functions":
				fnCmd := NewFunctionsCmd()
				fnCmd.SetOut(out)
				fnCmd.SetContext(cmd.Context())
				if err := fnCmd.RunE(fnCmd, nil); err != nil {
					_, _ = fmt.Fprintln(out, "error:", err)
				}
			case ".help":
				_, _ = fmt.Fprintln(out, "commands: .functions .help .quit")
			default:
				_, _ = fmt.Fprintf(out, "unknown command %s\n", line)
			}
			continue
		}

		compiled, err := compiler.Compile(line)
		if err != nil {
			_, _ = fmt.Fprintln(out, "error:", err)
			continue
		}
		_, _ = fmt.Fprintln(out, compiled.ToSQL())
	}
}
