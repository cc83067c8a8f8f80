// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// OptionPrefix marks a parameter token as a flag (keyword parameter).
const OptionPrefix = "-"

const (
	// TypeString is the default parameter type.
	TypeString ArgType = "string"
	// TypeInt parses values as base-10 integers.
	TypeInt ArgType = "int"
	// TypeFloat parses values as 64-bit floats.
	TypeFloat ArgType = "float"
	// TypeBool is a switch for flags and a parsed boolean for positionals.
	TypeBool ArgType = "bool"
	// TypeStrings is a repeatable string flag collected into a []string.
	TypeStrings ArgType = "strings"

	// NArgsOne consumes exactly one token (positionals only).
	NArgsOne NArgs = ""
	// NArgsOptional consumes zero or one token.
	NArgsOptional NArgs = "?"
	// NArgsAny consumes every remaining token.
	NArgsAny NArgs = "*"
	// NArgsSome consumes every remaining token and requires at least one.
	NArgsSome NArgs = "+"
)

type (
	// ArgType selects how a parameter's tokens are coerced.
	ArgType string

	// NArgs controls how many tokens a positional parameter consumes.
	NArgs string

	// ArgSpec declares one command parameter. Names is either a single
	// positional name ("name") or a set of flag aliases ("-c", "--count").
	//
	// Build specs fluently:
	//
	//	easyparse.Arg("name")
	//	easyparse.Arg("-c", "--count").Int().Default(1).Help("repeat count")
	ArgSpec struct {
		Names        []string
		Type         ArgType
		DefaultValue any
		Required     bool
		NArgs        NArgs
		Usage        string
	}

	// Param is the compiled form of an ArgSpec: the name it binds under and
	// whether it is passed positionally.
	Param struct {
		// Name is the positional name, or the keyword name for flags (prefix
		// dashes stripped, internal hyphens removed).
		Name       string
		Positional bool
		Spec       ArgSpec

		flagName  string
		shorthand string
		def       any
	}
)

// Arg starts a parameter declaration.
func Arg(names ...string) ArgSpec {
	return ArgSpec{Names: names, Type: TypeString}
}

// Int sets the parameter type to TypeInt.
func (s ArgSpec) Int() ArgSpec { s.Type = TypeInt; return s }

// Float sets the parameter type to TypeFloat.
func (s ArgSpec) Float() ArgSpec { s.Type = TypeFloat; return s }

// Bool sets the parameter type to TypeBool.
func (s ArgSpec) Bool() ArgSpec { s.Type = TypeBool; return s }

// Strings sets the parameter type to TypeStrings.
func (s ArgSpec) Strings() ArgSpec { s.Type = TypeStrings; return s }

// Default sets the value used when the parameter is absent.
func (s ArgSpec) Default(v any) ArgSpec { s.DefaultValue = v; return s }

// Help sets the parameter description.
func (s ArgSpec) Help(usage string) ArgSpec { s.Usage = usage; return s }

// Require marks a flag as mandatory.
func (s ArgSpec) Require() ArgSpec { s.Required = true; return s }

// Optional lets a positional parameter be omitted.
func (s ArgSpec) Optional() ArgSpec { s.NArgs = NArgsOptional; return s }

// Variadic makes a positional parameter collect all remaining tokens.
func (s ArgSpec) Variadic() ArgSpec { s.NArgs = NArgsAny; return s }

// AtLeastOne is Variadic with at least one token required.
func (s ArgSpec) AtLeastOne() ArgSpec { s.NArgs = NArgsSome; return s }

// IsFlag reports whether the spec declares a keyword parameter.
func (s ArgSpec) IsFlag() bool {
	return len(s.Names) > 0 && strings.HasPrefix(s.Names[0], OptionPrefix)
}

// IsValid reports whether t is a known parameter type.
func (t ArgType) IsValid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeStrings:
		return true
	default:
		return false
	}
}

// KeywordName converts a flag token to the keyword it binds under:
// "--dry-run" becomes "dryrun".
func KeywordName(flag string) string {
	return strings.ReplaceAll(strings.TrimLeft(flag, OptionPrefix), "-", "")
}

// compileSpecs classifies specs into positional and keyword parameters and
// checks that pflag will accept them.
func compileSpecs(specs []ArgSpec) ([]Param, error) {
	params := make([]Param, 0, len(specs))
	names := make(map[string]bool, len(specs))
	flags := make(map[string]bool)
	sawOptional := false
	sawVariadic := false

	for i, spec := range specs {
		if spec.Type == "" {
			spec.Type = TypeString
		}
		if !spec.Type.IsValid() {
			return nil, fmt.Errorf("%w: spec %d: unknown type %q", ErrInvalidArgSpec, i, spec.Type)
		}
		p, err := classify(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: spec %d: %w", ErrInvalidArgSpec, i, err)
		}
		if names[p.Name] {
			return nil, fmt.Errorf("%w: parameter %q declared twice", ErrInvalidArgSpec, p.Name)
		}
		names[p.Name] = true

		if p.Positional {
			if sawVariadic {
				return nil, fmt.Errorf("%w: positional %q follows a variadic parameter", ErrInvalidArgSpec, p.Name)
			}
			switch spec.NArgs {
			case NArgsOne:
				if sawOptional {
					return nil, fmt.Errorf("%w: required positional %q follows an optional one", ErrInvalidArgSpec, p.Name)
				}
			case NArgsOptional:
				sawOptional = true
			case NArgsAny, NArgsSome:
				sawVariadic = true
			default:
				return nil, fmt.Errorf("%w: positional %q: unknown nargs %q", ErrInvalidArgSpec, p.Name, spec.NArgs)
			}
		} else {
			if spec.NArgs != NArgsOne {
				return nil, fmt.Errorf("%w: flag %q cannot set nargs, use TypeStrings", ErrInvalidArgSpec, p.flagName)
			}
			for _, f := range []string{"--" + p.flagName, "-" + p.shorthand} {
				if f == "-" {
					continue
				}
				if flags[f] {
					return nil, fmt.Errorf("%w: flag %s declared twice", ErrInvalidArgSpec, f)
				}
				flags[f] = true
			}
		}

		if spec.DefaultValue != nil {
			def, err := coerceDefault(p)
			if err != nil {
				return nil, fmt.Errorf("%w: default for %q: %w", ErrInvalidArgSpec, p.Name, err)
			}
			p.def = def
		}
		params = append(params, p)
	}
	return params, nil
}

func classify(spec ArgSpec) (Param, error) {
	if len(spec.Names) == 0 {
		return Param{}, fmt.Errorf("no names given")
	}
	if !spec.IsFlag() {
		if len(spec.Names) != 1 {
			return Param{}, fmt.Errorf("positional parameter takes exactly one name, got %v", spec.Names)
		}
		name := spec.Names[0]
		if name == "" || strings.ContainsAny(name, " \t\n") {
			return Param{}, fmt.Errorf("illegal positional name %q", name)
		}
		return Param{Name: name, Positional: true, Spec: spec}, nil
	}

	p := Param{Spec: spec}
	for _, token := range spec.Names {
		switch {
		case strings.HasPrefix(token, "--"):
			long := strings.TrimPrefix(token, "--")
			if p.flagName != "" && p.flagName != p.shorthand {
				return Param{}, fmt.Errorf("more than one long name in %v", spec.Names)
			}
			if !validFlagName(long) {
				return Param{}, fmt.Errorf("illegal flag %q", token)
			}
			p.flagName = long
		case strings.HasPrefix(token, OptionPrefix):
			short := strings.TrimPrefix(token, OptionPrefix)
			if len(short) != 1 || !validFlagName(short) {
				return Param{}, fmt.Errorf("illegal short flag %q", token)
			}
			if p.shorthand != "" {
				return Param{}, fmt.Errorf("more than one short name in %v", spec.Names)
			}
			p.shorthand = short
			if p.flagName == "" {
				p.flagName = short
			}
		default:
			return Param{}, fmt.Errorf("mixed positional and flag names in %v", spec.Names)
		}
	}
	p.Name = KeywordName(p.flagName)
	return p, nil
}

func validFlagName(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit && r != '-' {
			return false
		}
	}
	return true
}

func coerceDefault(p Param) (any, error) {
	if p.Positional && (p.Spec.NArgs == NArgsAny || p.Spec.NArgs == NArgsSome) {
		raw, err := cast.ToStringSliceE(p.Spec.DefaultValue)
		if err != nil {
			return nil, err
		}
		return coerceMany(p.Spec.Type, raw)
	}
	return coerceValue(p.Spec.Type, p.Spec.DefaultValue)
}

func coerceValue(t ArgType, v any) (any, error) {
	switch t {
	case TypeInt:
		return cast.ToIntE(v)
	case TypeFloat:
		return cast.ToFloat64E(v)
	case TypeBool:
		return cast.ToBoolE(v)
	case TypeStrings:
		return cast.ToStringSliceE(v)
	default:
		return cast.ToStringE(v)
	}
}

// coerceMany converts the tokens consumed by a variadic positional into a
// slice of the declared element type.
func coerceMany(t ArgType, tokens []string) (any, error) {
	switch t {
	case TypeInt:
		out := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			v, err := cast.ToIntE(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case TypeFloat:
		out := make([]float64, 0, len(tokens))
		for _, tok := range tokens {
			v, err := cast.ToFloat64E(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case TypeBool:
		out := make([]bool, 0, len(tokens))
		for _, tok := range tokens {
			v, err := cast.ToBoolE(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return append([]string(nil), tokens...), nil
	}
}
