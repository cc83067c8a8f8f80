// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/easyparse/easyparse/internal/config"
	"github.com/easyparse/easyparse/internal/issue"
	"github.com/easyparse/easyparse/internal/manifest"
	"github.com/easyparse/easyparse/internal/script"
	"github.com/easyparse/easyparse/pkg/easyparse"

	"github.com/spf13/cobra"
)

// classifyError maps a failure to its issue catalog entry. The zero Id means
// the catalog has nothing to add.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, errConfigLoad):
		return issue.ConfigLoadFailedId
	case errors.Is(err, manifest.ErrNotFound):
		return issue.ManifestNotFoundId
	case errors.Is(err, manifest.ErrParse), errors.Is(err, manifest.ErrInvalid):
		return issue.ManifestParseErrorId
	case errors.Is(err, script.ErrScriptFailed):
		return issue.ScriptExecutionFailedId
	case errors.Is(err, easyparse.ErrCommandFailed):
		return issue.CommandFailedId
	case errors.Is(err, easyparse.ErrIllegalKeyword):
		return issue.IllegalKeywordId
	case errors.Is(err, easyparse.ErrDuplicateKeyword):
		return issue.DuplicateKeywordId
	case errors.Is(err, easyparse.ErrInvalidArgSpec):
		return issue.InvalidArgSpecId
	case errors.Is(err, easyparse.ErrLookup):
		return issue.MissingDeclarationId
	case errors.Is(err, easyparse.ErrDanglingDeclaration):
		return issue.DanglingDeclarationId
	case errors.Is(err, easyparse.ErrNoModules):
		return issue.NoModulesId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail renders err to stderr, followed by its catalog entry when cfg asks
// for Markdown help, and returns the ExitError that ends the process. A nil
// cfg means the configuration itself could not be loaded.
func (a *App) fail(cmd *cobra.Command, cfg *config.Config, err error) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	fmt.Fprintf(a.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, a.verbose))

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cfg.UI.MarkdownHelp {
		renderIssue(a.stderr, classifyError(err), cfg.UI.ColorScheme)
	}
	return newExitError(err)
}

func renderIssue(w io.Writer, id issue.Id, scheme config.ColorScheme) {
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(glamourStyle(scheme))
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
