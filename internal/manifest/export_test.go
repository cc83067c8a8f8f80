// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/easyparse/easyparse/pkg/easyparse"
)

// stripActions clears what Export cannot recover from a built tree.
func stripActions(m *Manifest) {
	for i := range m.Commands {
		m.Commands[i].Script, m.Commands[i].Handler = "", ""
	}
	var walk func(mods []ModuleSpec)
	walk = func(mods []ModuleSpec) {
		for i := range mods {
			for j := range mods[i].Commands {
				mods[i].Commands[j].Script, mods[i].Commands[j].Handler = "", ""
			}
			walk(mods[i].Modules)
		}
	}
	walk(m.Modules)
}

func TestExport_Root(t *testing.T) {
	t.Parallel()

	f := newFixture(t, toolsManifest)

	var buf bytes.Buffer
	if err := Export(f.parser.Root()).Encode(&buf); err != nil {
		t.Fatalf("Encode() returned error: %v", err)
	}

	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("exported TOML should load back, got: %v\n%s", err, buf.String())
	}

	want := mustLoad(t, toolsManifest)
	stripActions(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("exported manifest = %+v, want %+v", got, want)
	}
}

func TestExport_Subtree(t *testing.T) {
	t.Parallel()

	p := easyparse.New("demo")
	mod, err := p.NewModule("calc", "")
	if err != nil {
		t.Fatal(err)
	}
	noop := func(context.Context, easyparse.Args) error { return nil }
	if err := mod.AttachCommand("add", "Add numbers", noop, easyparse.Arg("nums").Float().AtLeastOne()); err != nil {
		t.Fatal(err)
	}

	m := Export(mod)
	if len(m.Commands) != 0 || len(m.Modules) != 1 {
		t.Fatalf("Export(subtree) = %+v, want one module", m)
	}
	calc := m.Modules[0]
	if calc.Key != "calc" || calc.Help != easyparse.DefaultHelp {
		t.Errorf("module = {%q %q}", calc.Key, calc.Help)
	}
	wantArg := ArgDecl{Names: []string{"nums"}, Type: "float", NArgs: "+"}
	if len(calc.Commands) != 1 || !reflect.DeepEqual(calc.Commands[0].Args, []ArgDecl{wantArg}) {
		t.Errorf("commands = %+v", calc.Commands)
	}
}
