// SPDX-License-Identifier: MPL-2.0

package script

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newCaptureRunner(t *testing.T, opts Options) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.IO = IO{Stdout: &stdout, Stderr: &stderr}
	return New(opts), &stdout, &stderr
}

func TestRunner_InlineScript(t *testing.T) {
	t.Parallel()

	r, stdout, _ := newCaptureRunner(t, Options{})
	if err := r.Run(context.Background(), "hello", "echo 'Hello from easyparse'", nil, nil); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if got := strings.TrimSpace(stdout.String()); got != "Hello from easyparse" {
		t.Errorf("Run() output = %q, want %q", got, "Hello from easyparse")
	}
}

func TestRunner_PositionalAndEnv(t *testing.T) {
	t.Parallel()

	r, stdout, _ := newCaptureRunner(t, Options{})
	src := `echo "$# $1 $2"
echo "sep=${EASYPARSE_SEP}"`

	err := r.Run(context.Background(), "args", src, []string{"-v", "two words"}, map[string]string{"EASYPARSE_SEP": "-"})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := "2 -v two words\nsep=-\n"
	if stdout.String() != want {
		t.Errorf("Run() output = %q, want %q", stdout.String(), want)
	}
}

func TestRunner_ExitStatus(t *testing.T) {
	t.Parallel()

	r, _, stderr := newCaptureRunner(t, Options{})
	err := r.Run(context.Background(), "fail", "echo oops >&2; exit 3", nil, nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 || exitErr.Script != "fail" {
		t.Errorf("ExitError = %+v, want {fail 3}", exitErr)
	}
	if !errors.Is(err, ErrScriptFailed) {
		t.Error("ExitError should wrap ErrScriptFailed")
	}
	if strings.TrimSpace(stderr.String()) != "oops" {
		t.Errorf("stderr = %q, want oops", stderr.String())
	}
}

func TestRunner_SyntaxError(t *testing.T) {
	t.Parallel()

	r, _, _ := newCaptureRunner(t, Options{})
	err := r.Run(context.Background(), "broken", "if then fi (", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("Run() error = %v, want syntax error", err)
	}
	if errors.Is(err, ErrScriptFailed) {
		t.Error("syntax errors are not exit statuses")
	}
}

func TestRunner_WorkDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r, stdout, _ := newCaptureRunner(t, Options{Dir: dir})
	if err := r.Run(context.Background(), "pwd", "pwd", nil, nil); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != dir {
		t.Errorf("pwd = %q, want %q", got, dir)
	}
}

func TestRunner_EnvIsolation(t *testing.T) {
	// Not parallel: uses t.Setenv.
	t.Setenv("EASYPARSE_SCRIPT_PROBE", "leak")

	isolated, out, _ := newCaptureRunner(t, Options{InheritEnv: false})
	if err := isolated.Run(context.Background(), "probe", `echo "[$EASYPARSE_SCRIPT_PROBE]"`, nil, nil); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[]" {
		t.Errorf("isolated output = %q, want []", got)
	}

	inherited, out, _ := newCaptureRunner(t, Options{InheritEnv: true})
	if err := inherited.Run(context.Background(), "probe", `echo "[$EASYPARSE_SCRIPT_PROBE]"`, nil, nil); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[leak]" {
		t.Errorf("inherited output = %q, want [leak]", got)
	}
}

func TestRunner_ExtraEnvOverridesInherited(t *testing.T) {
	// Not parallel: uses t.Setenv.
	t.Setenv("EASYPARSE_NAME", "process")

	r, out, _ := newCaptureRunner(t, Options{InheritEnv: true})
	err := r.Run(context.Background(), "probe", `echo "$EASYPARSE_NAME"`, nil, map[string]string{"EASYPARSE_NAME": "keyword"})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "keyword" {
		t.Errorf("output = %q, want keyword", got)
	}
}

func TestRunner_NilIO(t *testing.T) {
	t.Parallel()

	if err := New(Options{}).Run(context.Background(), "quiet", "echo discarded", nil, nil); err != nil {
		t.Errorf("Run() with nil IO returned error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate("ok", `for f in "$@"; do echo "$f"; done`); err != nil {
		t.Errorf("Validate() returned error for a valid script: %v", err)
	}
	if err := Validate("bad", `echo "unterminated`); err == nil {
		t.Error("Validate() should reject an unterminated quote")
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{`hello greet Ada`, []string{"hello", "greet", "Ada"}, false},
		{`text repeat "two words" --times 2`, []string{"text", "repeat", "two words", "--times", "2"}, false},
		{`calc add  1   2`, []string{"calc", "add", "1", "2"}, false},
		{`a 'b c' d\ e`, []string{"a", "b c", "d e"}, false},
		{``, nil, false},
		{`unterminated "quote`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			got, err := Split(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Split(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if !tt.wantErr && len(got)+len(tt.want) > 0 && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if !ExitCode(0).IsSuccess() || ExitCode(1).IsSuccess() {
		t.Error("IsSuccess() mismatch")
	}
	if ExitCode(42).String() != "42" {
		t.Errorf("String() = %q, want 42", ExitCode(42).String())
	}
}
