// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/easyparse/easyparse/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName names the config directory and prefixes log lines.
	AppName = "easyparse"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variables that override config keys.
	EnvPrefix = "EASYPARSE"
)

//go:embed config_schema.cue
var configSchema string

// fileName is the base name of config files.
const fileName = ConfigFileName + "." + ConfigFileExt

// ConfigDir returns the platform config directory for easyparse:
// $XDG_CONFIG_HOME (or ~/.config) on Linux, ~/Library/Application Support
// on macOS and %APPDATA% on Windows.
//
//nolint:revive // config.Dir would read ambiguously at call sites
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Path reports which file Load would read for opts and whether it exists.
// Without an explicit file the candidates are config.cue in the config
// directory, then config.cue in the working directory. When none exists the
// returned path is the one `config init` creates.
func Path(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, fileExists(opts.ConfigFilePath), nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", false, err
		}
	}

	candidates := []string{filepath.Join(dir, fileName)}
	if opts.ConfigDirPath == "" {
		candidates = append(candidates, fileName)
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c, true, nil
		}
	}
	return candidates[0], false, nil
}

// loader layers defaults, one optional CUE file and EASYPARSE_* variables
// in a private viper instance.
type loader struct {
	v *viper.Viper
}

func newLoader() *loader {
	v := viper.New()
	d := DefaultConfig()
	for key, value := range map[string]any{
		"log_level":          d.LogLevel,
		"manifests":          d.Manifests,
		"ui.color_scheme":    d.UI.ColorScheme,
		"ui.verbose":         d.UI.Verbose,
		"ui.markdown_help":   d.UI.MarkdownHelp,
		"script.dir":         d.Script.Dir,
		"script.inherit_env": d.Script.InheritEnv,
	} {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &loader{v: v}
}

// mergeFile validates the CUE file at path against #Config and merges it
// over the defaults.
func (l *loader) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := checkFileSize(data, path); err != nil {
		return err
	}

	cctx := cuecontext.New()
	schema := cctx.CompileString(configSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	user := cctx.CompileBytes(data, cue.Filename(path))
	if err := user.Err(); err != nil {
		return formatCUEError(err, path)
	}

	// #Config is closed, so unknown fields fail validation.
	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(user)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}
	var settings map[string]any
	if err := unified.Decode(&settings); err != nil {
		return formatCUEError(err, path)
	}
	if err := l.v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}
	return nil
}

func (l *loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// loadWithOptions returns the effective configuration for opts and the file
// it read, or "" when only defaults and environment overrides applied.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	path, exists, err := Path(opts)
	if err != nil {
		return nil, "", err
	}
	if !exists && opts.ConfigFilePath != "" {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Check the path given to --config").
			WithSuggestion("Create a file with 'easyparse config init'").
			Wrap(fmt.Errorf("config file not found: %w", fs.ErrNotExist)).
			BuildError()
	}

	l := newLoader()
	source := ""
	if exists {
		if err := l.mergeFile(path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check the file against 'easyparse config dump'").
				WithSuggestion("Unknown keys are rejected; see 'easyparse config --help'").
				Wrap(err).
				BuildError()
		}
		source = path
	}

	cfg, err := l.decode()
	if err != nil {
		return nil, "", err
	}

	// Environment overrides bypass the CUE schema.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check EASYPARSE_* environment variables for typos").
			Wrap(errors.Join(errs...)).
			BuildError()
	}
	return cfg, source, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file into dir (the platform
// config directory when dir is empty) unless one already exists. It returns
// the file path and whether it was created.
func CreateDefaultConfig(dir string) (string, bool, error) {
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", false, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if fileExists(path) {
		return path, false, nil
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE renders cfg as a config file that validates against #Config.
func GenerateCUE(cfg *Config) string {
	var b strings.Builder
	b.WriteString("// easyparse configuration file\n")
	b.WriteString("// Every field is optional; run 'easyparse config dump' to see the effective values.\n\n")
	fmt.Fprintf(&b, "log_level: %q\n", cfg.LogLevel)

	if len(cfg.Manifests) > 0 {
		b.WriteString("\nmanifests: [\n")
		for _, m := range cfg.Manifests {
			fmt.Fprintf(&b, "\t%q,\n", m)
		}
		b.WriteString("]\n")
	}

	fmt.Fprintf(&b, "\nui: {\n\tcolor_scheme:  %q\n\tverbose:       %v\n\tmarkdown_help: %v\n}\n",
		cfg.UI.ColorScheme, cfg.UI.Verbose, cfg.UI.MarkdownHelp)

	b.WriteString("\nscript: {\n")
	if cfg.Script.Dir != "" {
		fmt.Fprintf(&b, "\tdir:         %q\n", cfg.Script.Dir)
	}
	fmt.Fprintf(&b, "\tinherit_env: %v\n}\n", cfg.Script.InheritEnv)
	return b.String()
}
