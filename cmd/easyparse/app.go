// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/easyparse/easyparse/internal/config"
	"github.com/easyparse/easyparse/internal/demo"
	"github.com/easyparse/easyparse/internal/issue"
	"github.com/easyparse/easyparse/internal/manifest"
	"github.com/easyparse/easyparse/internal/script"
	"github.com/easyparse/easyparse/pkg/easyparse"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const rootHelp = "easyparse command tree"

var errConfigLoad = errors.New("config load failed")

type (
	// App wires CLI services and shared dependencies. Every cobra handler
	// receives an App and builds the command tree through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath}
}

// loadConfig reads the configuration selected by --config. The config's
// ui.verbose applies unless --verbose was given.
func (a *App) loadConfig(ctx context.Context) (*config.Loaded, error) {
	loaded, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigLoad, err)
	}
	if !a.verbose {
		a.verbose = loaded.UI.Verbose
	}
	return loaded, nil
}

// newLogger returns the stderr logger for cfg. --verbose forces debug.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})
	level, err := log.ParseLevel(cfg.LogLevel.String())
	if err != nil {
		level = log.WarnLevel
	}
	if a.verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

// build creates the full tree for cfg: the demo modules followed by every
// configured manifest, in order.
func (a *App) build(cfg *config.Config) (*easyparse.Parser, error) {
	logger := a.newLogger(cfg)

	p := easyparse.New(rootHelp, easyparse.WithOutput(a.stdout), easyparse.WithLogger(logger))
	if _, err := demo.Build(p, a.stdout); err != nil {
		return nil, err
	}

	runner := script.New(script.Options{
		Dir:        cfg.Script.Dir,
		InheritEnv: cfg.Script.InheritEnv,
		IO:         script.IO{Stdin: os.Stdin, Stdout: a.stdout, Stderr: a.stderr},
	})
	opts := manifest.ApplyOptions{Runner: runner, Handlers: demo.Handlers(a.stdout)}
	for _, path := range cfg.Manifests {
		m, err := manifest.LoadFile(path.String())
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load manifest").
				WithSuggestion("Check the manifests list shown by 'easyparse config show'").
				WithSuggestion("Relative paths resolve against the current directory").
				Wrap(err).
				BuildError()
		}
		if err := m.Apply(p.Root(), opts); err != nil {
			return nil, fmt.Errorf("apply manifest %s: %w", path, err)
		}
		logger.Debug("manifest applied", "path", path)
	}

	return p, nil
}

// dispatch builds the tree and runs tokens through it.
func (a *App) dispatch(cmd *cobra.Command, tokens []string) error {
	ctx := cmd.Context()
	loaded, err := a.loadConfig(ctx)
	if err != nil {
		return a.fail(cmd, nil, err)
	}
	p, err := a.build(loaded.Config)
	if err != nil {
		return a.fail(cmd, loaded.Config, err)
	}
	if tokens == nil {
		tokens = []string{}
	}
	if err := p.Parse(ctx, tokens); err != nil {
		return a.fail(cmd, loaded.Config, err)
	}
	return nil
}
