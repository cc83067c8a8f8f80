// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"io"
	"path"

	"github.com/easyparse/easyparse/pkg/easyparse"

	"github.com/pelletier/go-toml/v2"
)

// Export describes the subtree rooted at m as a manifest skeleton: modules,
// commands and argument declarations. Actions are not recoverable from the
// tree, so exported commands carry neither script nor handler. Exporting
// the root yields its commands and submodules at the top level.
func Export(m *easyparse.Module) *Manifest {
	if m.Path() == easyparse.RootPath {
		return &Manifest{
			Commands: exportCommands(m),
			Modules:  exportModules(m),
		}
	}
	return &Manifest{Modules: []ModuleSpec{exportModule(m)}}
}

func exportModule(m *easyparse.Module) ModuleSpec {
	return ModuleSpec{
		Key:      path.Base(m.Path()),
		Help:     m.Help(),
		Commands: exportCommands(m),
		Modules:  exportModules(m),
	}
}

func exportModules(m *easyparse.Module) []ModuleSpec {
	subs := m.Submodules()
	if len(subs) == 0 {
		return nil
	}
	out := make([]ModuleSpec, 0, len(subs))
	for _, sub := range subs {
		out = append(out, exportModule(sub))
	}
	return out
}

func exportCommands(m *easyparse.Module) []CommandSpec {
	cmds := m.Commands()
	if len(cmds) == 0 {
		return nil
	}
	out := make([]CommandSpec, 0, len(cmds))
	for _, c := range cmds {
		spec := CommandSpec{Keyword: c.Keyword(), Help: c.Help()}
		for _, p := range c.Params() {
			spec.Args = append(spec.Args, exportArg(p.Spec))
		}
		out = append(out, spec)
	}
	return out
}

func exportArg(s easyparse.ArgSpec) ArgDecl {
	d := ArgDecl{
		Names:    s.Names,
		Default:  s.DefaultValue,
		Required: s.Required,
		NArgs:    string(s.NArgs),
		Help:     s.Usage,
	}
	if s.Type != easyparse.TypeString {
		d.Type = string(s.Type)
	}
	return d
}

// Encode writes m as TOML with nested tables indented.
func (m *Manifest) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}
