// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/easyparse/easyparse/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `easyparse config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage easyparse configuration",
		Long: `Manage easyparse configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/easyparse/config.cue (~/.config by default)
  - macOS: ~/Library/Application Support/easyparse/config.cue
  - Windows: %APPDATA%\easyparse\config.cue

Every key can be overridden with an EASYPARSE_ environment variable,
e.g. EASYPARSE_LOG_LEVEL=debug or EASYPARSE_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			return showConfig(app.stdout, loaded)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exists, err := config.Path(app.loadOptions())
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintln(app.stdout, path)
			} else {
				fmt.Fprintf(app.stdout, "%s %s\n", path, SubtitleStyle.Render("(not created yet)"))
			}
			return nil
		},
	})

	var initDir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig(initDir)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Config file already exists:"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created config file:"), path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&initDir, "dir", "", "directory to create config.cue in (default is the platform config directory)")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			_, err = fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
			return err
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Loaded) error {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfg.Source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfg.Source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("log_level"), valueStyle.Render(cfg.LogLevel.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("manifests"))
	if len(cfg.Manifests) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, m := range cfg.Manifests {
		fmt.Fprintf(w, "  - %s\n", valueStyle.Render(m.String()))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  markdown_help: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.MarkdownHelp)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("script"))
	dir := cfg.Script.Dir
	if dir == "" {
		dir = "(current directory)"
	}
	fmt.Fprintf(w, "  dir: %s\n", valueStyle.Render(dir))
	fmt.Fprintf(w, "  inherit_env: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Script.InheritEnv)))

	return nil
}
