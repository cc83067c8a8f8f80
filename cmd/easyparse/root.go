// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for easyparse.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the easyparse command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "easyparse",
		Short: "Run commands from a tree of modules",
		Long: TitleStyle.Render("easyparse") + SubtitleStyle.Render(" - Run commands from a tree of modules") + `

easyparse resolves a list of words against a tree of modules. Each word
selects a submodule until one names a command, whose arguments are bound
from the remaining words. Incomplete or unknown input prints the
description of the module reached so far.

The tree holds the built-in demo modules plus every TOML manifest listed
under 'manifests' in the configuration file.

` + SubtitleStyle.Render("Examples:") + `
  easyparse tree                         Describe the whole tree
  easyparse run hello greet Ada --loud   Run a command
  easyparse run calc                     Describe the calc module
  easyparse exec 'text repeat go -n 3'   Run a command from one line
  easyparse config show                  Show current configuration`,
		TraverseChildren: true,
		SilenceUsage:     true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/easyparse/config.cue)")
	// Traverse only consults local flags when deciding whether a flag takes a value.
	rootCmd.Flags().AddFlagSet(rootCmd.PersistentFlags())

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(
		newRunCommand(app),
		newExecCommand(app),
		newTreeCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with production dependencies. It is called by
// main.main() and exits the process on failure.
func Execute() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

// run executes the root command and returns the process exit code.
func run() int {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}
