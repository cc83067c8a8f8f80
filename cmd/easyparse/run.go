// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/easyparse/easyparse/internal/issue"
	"github.com/easyparse/easyparse/internal/script"

	"github.com/spf13/cobra"
)

// newRunCommand creates `easyparse run`. Flag parsing is disabled so every
// word after `run`, flags included, reaches the tree untouched.
func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run [words...]",
		Short: "Resolve words against the tree and run the command they name",
		Long: `Resolve words against the tree and run the command they name.

Words select modules until one names a command; the rest are that command's
arguments. Global flags such as --verbose must come before 'run'. Negative
numbers are taken as values, not flags.`,
		Example: `  easyparse run hello greet Ada -g Hi
  easyparse run calc mul 2 -4
  easyparse --verbose run counter bump --by 3`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.dispatch(cmd, args)
		},
	}
}

// newExecCommand creates `easyparse exec`, which splits a single line with
// shell quoting rules before dispatching it.
func newExecCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <line>",
		Short:   "Split a command line with shell quoting and run it",
		Example: `  easyparse exec 'hello greet "Ada Lovelace" --loud'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := script.Split(args[0])
			if err != nil {
				return app.fail(cmd, nil, issue.WrapWithOperation(err, "split command line"))
			}
			return app.dispatch(cmd, tokens)
		},
	}
}
