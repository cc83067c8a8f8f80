// SPDX-License-Identifier: MPL-2.0

package demo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/easyparse/easyparse/pkg/easyparse"
)

func newDemo(t *testing.T) (*easyparse.Parser, *Counter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var help, out bytes.Buffer
	p := easyparse.New("easyparse demo", easyparse.WithOutput(&help))
	counter, err := Build(p, &out)
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	return p, counter, &help, &out
}

func TestBuild_Render(t *testing.T) {
	t.Parallel()

	p, _, _, _ := newDemo(t)
	want := "/\teasyparse demo\n" +
		"\t/hello\tGreetings\n" +
		"\t\tgreet\tGreet someone by name\n" +
		"\t/text\tText utilities\n" +
		"\t\tupper\tPrint words in upper case\n" +
		"\t\trepeat\tRepeat a word\n" +
		"\t/calc\tArithmetic on numbers\n" +
		"\t\tadd\tSum numbers\n" +
		"\t\tmul\tMultiply numbers\n" +
		"\t/counter\tA stateful counter\n" +
		"\t\tbump\tIncrease the counter\n"
	if got := p.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if err := p.Verify(); err != nil {
		t.Errorf("Verify() returned error: %v", err)
	}
}

func TestBuild_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"hello", "greet", "Ada"}, "Hello, Ada!\n"},
		{[]string{"hello", "greet", "Ada", "--greeting", "Hi", "-l"}, "HI, ADA!\n"},
		{[]string{"text", "upper", "make", "it", "loud"}, "MAKE IT LOUD\n"},
		{[]string{"text", "repeat", "go"}, "go go\n"},
		{[]string{"text", "repeat", "go", "-n", "3", "--sep", ","}, "go,go,go\n"},
		{[]string{"calc", "add", "1", "2", "3.5"}, "6.5\n"},
		{[]string{"calc", "mul", "2", "4"}, "8\n"},
		{[]string{"calc", "mul", "--", "2", "-4"}, "-8\n"},
		{[]string{"calc", "add", "-1", "2"}, "1\n"},
		{[]string{"counter", "bump", "--by", "-2"}, "/counter: -2\n"},
		{[]string{"counter", "bump"}, "/counter: 1\n"},
		{[]string{"counter", "bump", "--by", "5"}, "/counter: 5\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			t.Parallel()
			p, _, help, out := newDemo(t)
			if err := p.Parse(context.Background(), tt.tokens); err != nil {
				t.Fatalf("Parse() returned error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if help.Len() != 0 {
				t.Errorf("unexpected help output %q", help.String())
			}
		})
	}
}

func TestBuild_CounterKeepsState(t *testing.T) {
	t.Parallel()

	p, counter, _, out := newDemo(t)
	for _, tokens := range [][]string{{"counter", "bump"}, {"counter", "bump", "-b", "2"}} {
		if err := p.Parse(context.Background(), tokens); err != nil {
			t.Fatalf("Parse(%v) returned error: %v", tokens, err)
		}
	}
	if counter.Count != 3 {
		t.Errorf("Count = %d, want 3", counter.Count)
	}
	if out.String() != "/counter: 1\n/counter: 3\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestBuild_BadArgumentsPrintModuleHelp(t *testing.T) {
	t.Parallel()

	p, _, help, out := newDemo(t)
	if err := p.Parse(context.Background(), []string{"calc", "add", "one"}); err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("handler should not run, got %q", out.String())
	}
	want := "\t/calc\tArithmetic on numbers\n\t\tadd\tSum numbers\n\t\tmul\tMultiply numbers\n"
	if help.String() != want {
		t.Errorf("help = %q, want %q", help.String(), want)
	}
}

func TestBuild_HandlerError(t *testing.T) {
	t.Parallel()

	p, _, _, _ := newDemo(t)
	err := p.Parse(context.Background(), []string{"text", "repeat", "x", "--times=-1"})
	var cmdErr *easyparse.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Parse() error = %v, want *CommandError", err)
	}
	if cmdErr.Path != "/text" || cmdErr.Keyword != "repeat" {
		t.Errorf("CommandError = %+v", cmdErr)
	}
}

func TestBuild_Twice(t *testing.T) {
	t.Parallel()

	p, _, _, _ := newDemo(t)
	if _, err := Build(p, &bytes.Buffer{}); !errors.Is(err, easyparse.ErrDuplicateKeyword) {
		t.Errorf("second Build() error = %v, want ErrDuplicateKeyword", err)
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{0: "0", 10: "10", 2.5: "2.5", -8: "-8", 0.125: "0.125"}
	for in, want := range tests {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
