// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// negativeMarker hides a negative-number positional from pflag while it
// parses; it cannot occur in a command-line argument.
const negativeMarker = "\x00"


type (
	// HandlerFunc runs a command that is not bound to a module instance.
	HandlerFunc func(ctx context.Context, args Args) error

	// MethodHandler runs a command bound to its owning module. owner is the
	// value the module was mounted as: an *Instance[T] for mounted modules.
	MethodHandler func(ctx context.Context, owner any, args Args) error

	// Command is a leaf of the module tree.
	Command struct {
		keyword string
		help    string
		bound   bool
		handler MethodHandler
		params  []Param
	}
)

func newCommand(keyword, help string, handler MethodHandler, specs []ArgSpec, bound bool) (*Command, error) {
	if handler == nil {
		return nil, errors.New("nil handler")
	}
	params, err := compileSpecs(specs)
	if err != nil {
		return nil, err
	}
	return &Command{
		keyword: keyword,
		help:    helpOrDefault(help),
		bound:   bound,
		handler: handler,
		params:  params,
	}, nil
}

// Keyword returns the local name of the command.
func (c *Command) Keyword() string { return c.keyword }

// Help returns the command description.
func (c *Command) Help() string { return c.help }

// Bound reports whether the handler receives its owning module instance.
func (c *Command) Bound() bool { return c.bound }

// Params returns the parameter classification in declaration order.
func (c *Command) Params() []Param {
	return append([]Param(nil), c.params...)
}

// Bind parses tokens against the command's parameters. Malformed input
// yields an *ArgumentError.
func (c *Command) Bind(tokens []string) (Args, error) {
	fs := pflag.NewFlagSet(c.keyword, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	for _, p := range c.params {
		if !p.Positional {
			defineFlag(fs, p)
		}
	}

	if err := fs.Parse(shieldNegatives(fs, tokens)); err != nil {
		return Args{}, &ArgumentError{Command: c.keyword, Err: err}
	}

	args := Args{Keyword: make(map[string]any)}
	rest := fs.Args()
	for i, tok := range rest {
		rest[i] = strings.TrimPrefix(tok, negativeMarker)
	}
	next := 0

	for _, p := range c.params {
		if p.Positional {
			v, consumed, err := bindPositional(p, rest[next:])
			if err != nil {
				return Args{}, &ArgumentError{Command: c.keyword, Err: err}
			}
			next += consumed
			args.Positional = append(args.Positional, v)
			continue
		}

		flag := fs.Lookup(p.flagName)
		if flag == nil {
			return Args{}, definitionErr("bind arguments", "", c.keyword,
				fmt.Errorf("flag --%s missing from flag set", p.flagName))
		}
		if p.Spec.Required && !flag.Changed {
			return Args{}, &ArgumentError{
				Command: c.keyword,
				Err:     fmt.Errorf("required flag --%s not set", p.flagName),
			}
		}
		if !flag.Changed && p.def == nil && p.Spec.Type != TypeBool {
			continue
		}
		v, err := flagValue(fs, p)
		if err != nil {
			return Args{}, definitionErr("bind arguments", "", c.keyword, err)
		}
		args.Keyword[p.Name] = v
	}

	if next < len(rest) {
		return Args{}, &ArgumentError{
			Command: c.keyword,
			Err:     fmt.Errorf("unrecognized arguments: %v", rest[next:]),
		}
	}
	return args, nil
}

func bindPositional(p Param, tokens []string) (any, int, error) {
	switch p.Spec.NArgs {
	case NArgsAny, NArgsSome:
		if len(tokens) == 0 {
			if p.Spec.NArgs == NArgsSome {
				return nil, 0, fmt.Errorf("missing value for %q", p.Name)
			}
			if p.def != nil {
				return p.def, 0, nil
			}
		}
		v, err := coerceMany(p.Spec.Type, tokens)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", p.Name, err)
		}
		return v, len(tokens), nil
	case NArgsOptional:
		if len(tokens) == 0 {
			return p.def, 0, nil
		}
	default:
		if len(tokens) == 0 {
			return nil, 0, fmt.Errorf("missing value for %q", p.Name)
		}
	}
	v, err := coerceValue(p.Spec.Type, tokens[0])
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", p.Name, err)
	}
	return v, 1, nil
}

func defineFlag(fs *pflag.FlagSet, p Param) {
	switch p.Spec.Type {
	case TypeInt:
		def, _ := p.def.(int)
		fs.IntP(p.flagName, p.shorthand, def, p.Spec.Usage)
	case TypeFloat:
		def, _ := p.def.(float64)
		fs.Float64P(p.flagName, p.shorthand, def, p.Spec.Usage)
	case TypeBool:
		def, _ := p.def.(bool)
		fs.BoolP(p.flagName, p.shorthand, def, p.Spec.Usage)
	case TypeStrings:
		def, _ := p.def.([]string)
		fs.StringArrayP(p.flagName, p.shorthand, def, p.Spec.Usage)
	default:
		def, _ := p.def.(string)
		fs.StringP(p.flagName, p.shorthand, def, p.Spec.Usage)
	}
}

func flagValue(fs *pflag.FlagSet, p Param) (any, error) {
	switch p.Spec.Type {
	case TypeInt:
		return fs.GetInt(p.flagName)
	case TypeFloat:
		return fs.GetFloat64(p.flagName)
	case TypeBool:
		return fs.GetBool(p.flagName)
	case TypeStrings:
		return fs.GetStringArray(p.flagName)
	default:
		return fs.GetString(p.flagName)
	}
}

// shieldNegatives marks negative numbers that sit in positional slots so
// pflag does not read "-4" as a shorthand cluster. Values of flags that take
// one ("--by -4") and tokens after "--" are left alone. Nothing is marked
// when some flag has a digit shorthand.
func shieldNegatives(fs *pflag.FlagSet, tokens []string) []string {
	digitShorthand := false
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Shorthand != "" && f.Shorthand[0] >= '0' && f.Shorthand[0] <= '9' {
			digitShorthand = true
		}
	})
	if digitShorthand {
		return tokens
	}

	out := append([]string(nil), tokens...)
	for i := 0; i < len(out); i++ {
		tok := out[i]
		if tok == "--" {
			break
		}
		if isNegativeNumber(tok) {
			out[i] = negativeMarker + tok
			continue
		}
		if takesNextToken(fs, tok) {
			i++
		}
	}
	return out
}

func isNegativeNumber(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' || !(tok[1] == '.' || (tok[1] >= '0' && tok[1] <= '9')) {
		return false
	}
	_, err := cast.ToFloat64E(tok)
	return err == nil
}

// takesNextToken reports whether pflag will consume the token after tok as
// the value of a flag.
func takesNextToken(fs *pflag.FlagSet, tok string) bool {
	switch {
	case strings.HasPrefix(tok, "--"):
		name := tok[2:]
		if name == "" || strings.Contains(name, "=") {
			return false
		}
		f := fs.Lookup(name)
		return f != nil && f.NoOptDefVal == ""
	case strings.HasPrefix(tok, "-"):
		cluster := tok[1:]
		for i := range len(cluster) {
			f := fs.ShorthandLookup(cluster[i : i+1])
			if f == nil {
				return false
			}
			if f.NoOptDefVal == "" {
				return i == len(cluster)-1
			}
		}
	}
	return false
}
