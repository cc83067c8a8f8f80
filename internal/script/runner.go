// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// IO holds the standard streams handed to scripts. Nil readers and
	// writers are replaced by empty input and discarded output.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Options configures a Runner.
	Options struct {
		// Dir is the working directory; empty means the process directory.
		Dir string
		// InheritEnv passes os.Environ() to every script.
		InheritEnv bool
		IO         IO
	}

	// Runner executes shell scripts in the embedded mvdan/sh interpreter.
	// It holds no per-run state and may be shared.
	Runner struct {
		dir        string
		inheritEnv bool
		io         IO
	}
)

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{
		dir:        opts.Dir,
		inheritEnv: opts.InheritEnv,
		io:         opts.IO,
	}
}

// Validate parses src without running it.
func Validate(name, src string) error {
	if _, err := parse(name, src); err != nil {
		return err
	}
	return nil
}

// Run executes src with positional as $1.. and env added to the script
// environment. A non-zero exit status is returned as *ExitError.
func (r *Runner) Run(ctx context.Context, name, src string, positional []string, env map[string]string) error {
	prog, err := parse(name, src)
	if err != nil {
		return err
	}

	stdin, stdout, stderr := r.io.Stdin, r.io.Stdout, r.io.Stderr
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := []interp.RunnerOption{
		interp.Dir(r.dir),
		interp.Env(expand.ListEnviron(r.environ(env)...)),
		interp.StdIO(stdin, stdout, stderr),
	}
	// "--" keeps arguments such as "-v" from being read as shell options.
	if len(positional) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, positional...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return nil
	}

	var status interp.ExitStatus
	if errors.As(err, &status) {
		return &ExitError{Script: name, Code: ExitCode(status)}
	}
	return fmt.Errorf("script %s execution failed: %w", name, err)
}

// environ lists the process environment (when inherited) followed by env in
// key order. Later entries win in expand.ListEnviron.
func (r *Runner) environ(env map[string]string) []string {
	var out []string
	if r.inheritEnv {
		out = append(out, os.Environ()...)
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

func parse(name, src string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}

// Split breaks a command line into tokens with POSIX shell quoting rules.
// Parameter expansion reads the process environment.
func Split(line string) ([]string, error) {
	fields, err := shell.Fields(line, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid command line: %w", err)
	}
	return fields, nil
}
