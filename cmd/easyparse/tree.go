// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/easyparse/easyparse/internal/manifest"
	"github.com/easyparse/easyparse/pkg/easyparse"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type treeFormat struct {
	markdown bool
	toml     bool
}

// newTreeCommand creates `easyparse tree`, which describes the tree or the
// subtree reached by the given module keys.
func newTreeCommand(app *App) *cobra.Command {
	var format treeFormat

	treeCmd := &cobra.Command{
		Use:   "tree [module-keys...]",
		Short: "Describe the module tree",
		Example: `  easyparse tree
  easyparse tree text --markdown
  easyparse tree --toml > skeleton.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTree(cmd, app, args, format)
		},
	}

	treeCmd.Flags().BoolVar(&format.markdown, "markdown", false, "render the tree as styled Markdown")
	treeCmd.Flags().BoolVar(&format.toml, "toml", false, "export the tree as a TOML manifest skeleton")
	treeCmd.MarkFlagsMutuallyExclusive("markdown", "toml")

	return treeCmd
}

func showTree(cmd *cobra.Command, app *App, keys []string, format treeFormat) error {
	loaded, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, nil, err)
	}
	cfg := loaded.Config
	p, err := app.build(cfg)
	if err != nil {
		return app.fail(cmd, cfg, err)
	}
	if err := p.Verify(); err != nil {
		return app.fail(cmd, cfg, err)
	}

	mod, ok := p.Root().Lookup(keys...)
	if !ok {
		return app.fail(cmd, cfg, fmt.Errorf("no module at %s", easyparse.RootPath+strings.Join(keys, "/")))
	}

	switch {
	case format.toml:
		return manifest.Export(mod).Encode(app.stdout)
	case format.markdown:
		rendered, err := glamour.Render(treeMarkdown(mod), glamourStyle(cfg.UI.ColorScheme))
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = fmt.Fprint(app.stdout, rendered)
		return err
	default:
		_, err := fmt.Fprint(app.stdout, mod.Render())
		return err
	}
}

// treeMarkdown describes every module under m as a heading followed by a
// list of its commands and their parameters.
func treeMarkdown(m *easyparse.Module) string {
	var md strings.Builder
	_ = m.Walk(func(mod *easyparse.Module) error {
		level := min(mod.Level()-m.Level(), 5)
		fmt.Fprintf(&md, "%s `%s`\n\n%s\n\n", strings.Repeat("#", level+1), mod.Path(), mod.Help())
		for _, c := range mod.Commands() {
			fmt.Fprintf(&md, "- **%s** %s\n", c.Keyword(), c.Help())
			for _, p := range c.Params() {
				fmt.Fprintf(&md, "  - %s\n", paramMarkdown(p))
			}
		}
		if len(mod.Commands()) > 0 {
			md.WriteString("\n")
		}
		return nil
	})
	return md.String()
}

func paramMarkdown(p easyparse.Param) string {
	var sb strings.Builder
	if p.Positional {
		fmt.Fprintf(&sb, "`%s%s`", p.Name, p.Spec.NArgs)
	} else {
		fmt.Fprintf(&sb, "`%s`", strings.Join(p.Spec.Names, ", "))
	}
	fmt.Fprintf(&sb, " (%s)", p.Spec.Type)
	if p.Spec.Usage != "" {
		sb.WriteString(" ")
		sb.WriteString(p.Spec.Usage)
	}
	if p.Spec.DefaultValue != nil {
		fmt.Fprintf(&sb, ", default `%v`", p.Spec.DefaultValue)
	}
	if p.Spec.Required {
		sb.WriteString(", required")
	}
	return sb.String()
}
