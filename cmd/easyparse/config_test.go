// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/easyparse/easyparse/internal/config"
)

func TestConfig_Show(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.cue", quietConfig+"script: dir: \"/srv\"\n")

	res := runCLI(t, cfgPath, "config", "show")
	if res.err != nil {
		t.Fatalf("config show returned error: %v", res.err)
	}
	for _, want := range []string{"Current Configuration", cfgPath, "log_level", "error", "(none configured)", "markdown_help", "false", "/srv"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestConfig_Path(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "config.cue", quietConfig)
	res := runCLI(t, cfgPath, "config", "path")
	if res.err != nil {
		t.Fatalf("config path returned error: %v", res.err)
	}
	if res.stdout != cfgPath+"\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, cfgPath+"\n")
	}
}

func TestConfig_Dump(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "config.cue", quietConfig)
	res := runCLI(t, cfgPath, "config", "dump")
	if res.err != nil {
		t.Fatalf("config dump returned error: %v", res.err)
	}
	for _, want := range []string{`log_level: "error"`, "markdown_help: false", "inherit_env: true"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config dump missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestConfig_Init(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "config.cue", quietConfig)
	target := t.TempDir()

	res := runCLI(t, cfgPath, "config", "init", "--dir", target)
	if res.err != nil {
		t.Fatalf("config init returned error: %v", res.err)
	}
	created := filepath.Join(target, "config.cue")
	if !strings.Contains(res.stdout, "Created config file") || !strings.Contains(res.stdout, created) {
		t.Errorf("stdout = %q", res.stdout)
	}
	if _, err := os.Stat(created); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// The generated file must load back through the CLI.
	if res := runCLI(t, created, "config", "dump"); res.err != nil {
		t.Errorf("generated config does not load: %v\n%s", res.err, res.stderr)
	}

	res = runCLI(t, cfgPath, "config", "init", "--dir", target)
	if res.err != nil {
		t.Fatalf("second config init returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "already exists") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

type staticProvider struct {
	cfg *config.Config
	err error
}

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Loaded, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &config.Loaded{Config: p.cfg}, nil
}

func TestConfig_ShowInjectedProvider(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Manifests = []config.ManifestPath{"git.toml"}
	cfg.UI.Verbose = true

	var stdout bytes.Buffer
	app := NewApp(Dependencies{Config: staticProvider{cfg: cfg}, Stdout: &stdout, Stderr: io.Discard})
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs([]string{"config", "show"})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config show returned error: %v", err)
	}

	for _, want := range []string{"(using defaults)", "- git.toml", "verbose: true"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("config show missing %q:\n%s", want, stdout.String())
		}
	}
	if !app.verbose {
		t.Error("ui.verbose from the config should enable verbose output")
	}
}

func TestConfig_ProviderFailure(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticProvider{err: errors.New("disk on fire")},
		Stdout: io.Discard,
		Stderr: &stderr,
	})
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs([]string{"run", "hello"})

	err := rootCmd.ExecuteContext(context.Background())
	if !errors.Is(err, errConfigLoad) {
		t.Fatalf("error = %v, want errConfigLoad", err)
	}
	if !strings.Contains(stderr.String(), "disk on fire") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
