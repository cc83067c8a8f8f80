// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/easyparse/easyparse/internal/script"
	"github.com/easyparse/easyparse/pkg/easyparse"

	"github.com/spf13/cast"
)

// EnvPrefix prefixes the environment variables that carry keyword
// arguments into scripts: --dry-run becomes EASYPARSE_DRYRUN.
const EnvPrefix = "EASYPARSE_"

type (
	// Handlers maps the names manifests use in `handler = "..."` to Go
	// command handlers.
	Handlers map[string]easyparse.HandlerFunc

	// ApplyOptions supplies the collaborators commands are bound to.
	ApplyOptions struct {
		// Runner executes script commands. Required when the manifest has any.
		Runner   *script.Runner
		Handlers Handlers
	}
)

// Validate checks everything Apply needs that TOML decoding cannot:
// keywords, one action per command, known handlers and script syntax.
// Keyword uniqueness is left to the module tree.
func (m *Manifest) Validate(handlers Handlers) error {
	for _, c := range m.Commands {
		if err := m.validateCommand("/", c, handlers); err != nil {
			return err
		}
	}
	for _, mod := range m.Modules {
		if err := m.validateModule("/", mod, handlers); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) validateModule(parent string, mod ModuleSpec, handlers Handlers) error {
	loc := path.Join(parent, mod.Key)
	if !easyparse.ValidKeyword(mod.Key) {
		return m.invalid(loc, fmt.Errorf("%w: module %q", ErrBadKeyword, mod.Key))
	}
	for _, c := range mod.Commands {
		if err := m.validateCommand(loc, c, handlers); err != nil {
			return err
		}
	}
	for _, sub := range mod.Modules {
		if err := m.validateModule(loc, sub, handlers); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) validateCommand(parent string, c CommandSpec, handlers Handlers) error {
	loc := path.Join(parent, c.Keyword)
	if !easyparse.ValidKeyword(c.Keyword) {
		return m.invalid(loc, fmt.Errorf("%w: command %q", ErrBadKeyword, c.Keyword))
	}

	hasScript := strings.TrimSpace(c.Script) != ""
	hasHandler := c.Handler != ""
	switch {
	case hasScript == hasHandler:
		return m.invalid(loc, ErrNoAction)
	case hasHandler:
		if _, ok := handlers[c.Handler]; !ok {
			return m.invalid(loc, fmt.Errorf("%w %q", ErrUnknownHandler, c.Handler))
		}
	default:
		if err := script.Validate(loc, c.Script); err != nil {
			return m.invalid(loc, err)
		}
	}
	return nil
}

func (m *Manifest) invalid(loc string, err error) error {
	name := m.path
	if name == "" {
		name = "<input>"
	}
	return &ValidationError{Path: name, Location: loc, Err: err}
}

// Apply validates the manifest and adds its commands and modules under
// parent. Tree errors (duplicate keywords, bad argument specs, sealed tree)
// come back as easyparse definition errors.
func (m *Manifest) Apply(parent *easyparse.Module, opts ApplyOptions) error {
	if err := m.Validate(opts.Handlers); err != nil {
		return err
	}
	for _, c := range m.Commands {
		if err := attachCommand(parent, c, opts); err != nil {
			return err
		}
	}
	for _, mod := range m.Modules {
		if err := applyModule(parent, mod, opts); err != nil {
			return err
		}
	}
	return nil
}

func applyModule(parent *easyparse.Module, spec ModuleSpec, opts ApplyOptions) error {
	mod, err := parent.NewSubmodule(spec.Key, spec.Help)
	if err != nil {
		return err
	}
	for _, c := range spec.Commands {
		if err := attachCommand(mod, c, opts); err != nil {
			return err
		}
	}
	for _, sub := range spec.Modules {
		if err := applyModule(mod, sub, opts); err != nil {
			return err
		}
	}
	return nil
}

func attachCommand(mod *easyparse.Module, c CommandSpec, opts ApplyOptions) error {
	specs := make([]easyparse.ArgSpec, 0, len(c.Args))
	for _, a := range c.Args {
		specs = append(specs, a.spec())
	}

	handler := opts.Handlers[c.Handler]
	if c.Handler == "" {
		if opts.Runner == nil {
			return fmt.Errorf("command %s: script commands need a script runner", path.Join(mod.Path(), c.Keyword))
		}
		handler = scriptHandler(opts.Runner, path.Join(mod.Path(), c.Keyword), c.Script)
	}
	return mod.AttachCommand(c.Keyword, c.Help, handler, specs...)
}

func (a ArgDecl) spec() easyparse.ArgSpec {
	s := easyparse.Arg(a.Names...)
	if a.Type != "" {
		s.Type = easyparse.ArgType(a.Type)
	}
	s.DefaultValue = a.Default
	s.Required = a.Required
	s.NArgs = easyparse.NArgs(a.NArgs)
	s.Usage = a.Help
	return s
}

// scriptHandler runs src with positional arguments as $1.. and keyword
// arguments as EASYPARSE_<NAME> variables.
func scriptHandler(runner *script.Runner, name, src string) easyparse.HandlerFunc {
	return func(ctx context.Context, args easyparse.Args) error {
		var positional []string
		for _, v := range args.Positional {
			positional = append(positional, toStrings(v)...)
		}

		env := make(map[string]string, len(args.Keyword))
		for k, v := range args.Keyword {
			env[EnvPrefix+strings.ToUpper(k)] = strings.Join(toStrings(v), " ")
		}
		return runner.Run(ctx, name, src, positional, env)
	}
}

// toStrings flattens a bound value: slices yield one string per element.
func toStrings(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []int, []float64, []bool:
		return cast.ToStringSlice(vs)
	default:
		return []string{cast.ToString(v)}
	}
}
