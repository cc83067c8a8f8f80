// SPDX-License-Identifier: MPL-2.0

// Package demo builds the example module tree shipped with the easyparse
// binary. It exercises every way of adding commands: free handlers on plain
// modules and a declared command bound to a mounted value.
package demo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/easyparse/easyparse/internal/manifest"
	"github.com/easyparse/easyparse/pkg/easyparse"
)

// Counter is the state behind the mounted counter module.
type Counter struct {
	Count int
	out   io.Writer
}

// NewCounter returns a counter that reports to out.
func NewCounter(out io.Writer) *Counter {
	return &Counter{out: out}
}

func bump(_ context.Context, self *easyparse.Instance[*Counter], args easyparse.Args) error {
	self.Value.Count += args.IntOr("by", 1)
	_, err := fmt.Fprintf(self.Value.out, "%s: %d\n", self.Path(), self.Value.Count)
	return err
}

// Build adds the hello, text, calc and counter modules to p. Command
// output goes to out. It returns the mounted counter.
func Build(p *easyparse.Parser, out io.Writer) (*Counter, error) {
	h := Handlers(out)

	hello, err := p.NewModule("hello", "Greetings")
	if err != nil {
		return nil, err
	}
	err = hello.AttachCommand("greet", "Greet someone by name", h["greet"],
		easyparse.Arg("name").Help("who to greet"),
		easyparse.Arg("-g", "--greeting").Default("Hello").Help("greeting word"),
		easyparse.Arg("-l", "--loud").Bool().Help("shout the greeting"),
	)
	if err != nil {
		return nil, err
	}

	text, err := p.NewModule("text", "Text utilities")
	if err != nil {
		return nil, err
	}
	if err := text.AttachCommand("upper", "Print words in upper case", h["upper"],
		easyparse.Arg("words").AtLeastOne(),
	); err != nil {
		return nil, err
	}
	if err := text.AttachCommand("repeat", "Repeat a word", h["repeat"],
		easyparse.Arg("word"),
		easyparse.Arg("-n", "--times").Int().Default(2),
		easyparse.Arg("-s", "--sep").Default(" "),
	); err != nil {
		return nil, err
	}

	calc, err := p.NewModule("calc", "Arithmetic on numbers")
	if err != nil {
		return nil, err
	}
	if err := calc.AttachCommand("add", "Sum numbers", h["add"],
		easyparse.Arg("nums").Float().AtLeastOne(),
	); err != nil {
		return nil, err
	}
	if err := calc.AttachCommand("mul", "Multiply numbers", h["mul"],
		easyparse.Arg("nums").Float().AtLeastOne(),
	); err != nil {
		return nil, err
	}

	if err := easyparse.Declare[*Counter](p.Registry(), "bump", "Increase the counter", bump,
		easyparse.Arg("-b", "--by").Int().Help("step"),
	); err != nil {
		return nil, err
	}
	counter := NewCounter(out)
	if _, err := easyparse.AddModule(p, "counter", "A stateful counter", counter); err != nil {
		return nil, err
	}
	return counter, nil
}

// Handlers returns the demo command handlers by name, so manifests can
// reference them with `handler = "upper"`.
func Handlers(out io.Writer) manifest.Handlers {
	return manifest.Handlers{
		"greet": func(_ context.Context, args easyparse.Args) error {
			msg := fmt.Sprintf("%s, %s!", args.StringOr("greeting", "Hello"), args.String(0))
			if args.BoolOr("loud", false) {
				msg = strings.ToUpper(msg)
			}
			_, err := fmt.Fprintln(out, msg)
			return err
		},
		"upper": func(_ context.Context, args easyparse.Args) error {
			_, err := fmt.Fprintln(out, strings.ToUpper(strings.Join(args.Strings(0), " ")))
			return err
		},
		"repeat": func(_ context.Context, args easyparse.Args) error {
			n := args.IntOr("times", 2)
			if n < 0 {
				return fmt.Errorf("times must not be negative, got %d", n)
			}
			words := make([]string, n)
			for i := range words {
				words[i] = args.String(0)
			}
			_, err := fmt.Fprintln(out, strings.Join(words, args.StringOr("sep", " ")))
			return err
		},
		"add": func(_ context.Context, args easyparse.Args) error {
			sum := 0.0
			for _, v := range floats(args) {
				sum += v
			}
			_, err := fmt.Fprintln(out, formatNumber(sum))
			return err
		},
		"mul": func(_ context.Context, args easyparse.Args) error {
			product := 1.0
			for _, v := range floats(args) {
				product *= v
			}
			_, err := fmt.Fprintln(out, formatNumber(product))
			return err
		},
	}
}

func floats(args easyparse.Args) []float64 {
	vs, _ := args.At(0).([]float64)
	return vs
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
}
