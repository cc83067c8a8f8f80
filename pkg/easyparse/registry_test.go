// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"errors"
	"reflect"
	"testing"
)

type (
	siteProbe   struct{}
	otherProbe  int
	aliasedName = siteProbe
)

func TestSiteOf(t *testing.T) {
	t.Parallel()

	const pkg = "github.com/easyparse/easyparse/pkg/easyparse"

	tests := []struct {
		name string
		get  func() (SiteKey, error)
		want SiteKey
	}{
		{"struct", SiteOf[siteProbe], SiteKey{Namespace: pkg, Type: "siteProbe"}},
		{"pointer", SiteOf[*siteProbe], SiteKey{Namespace: pkg, Type: "siteProbe"}},
		{"alias", SiteOf[aliasedName], SiteKey{Namespace: pkg, Type: "siteProbe"}},
		{"named int", SiteOf[otherProbe], SiteKey{Namespace: pkg, Type: "otherProbe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.get()
			if err != nil {
				t.Fatalf("SiteOf() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SiteOf() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := SiteOf[struct{ n int }](); !errors.Is(err, ErrDefinition) {
		t.Errorf("SiteOf(unnamed) error = %v, want ErrDefinition", err)
	}
	if _, err := SiteOf[any](); !errors.Is(err, ErrDefinition) {
		t.Errorf("SiteOf(any) error = %v, want ErrDefinition", err)
	}
}

func TestSiteKey_String(t *testing.T) {
	t.Parallel()

	if got := (SiteKey{Namespace: "example.com/tool", Type: "Tmux"}).String(); got != "example.com/tool.Tmux" {
		t.Errorf("String() = %q", got)
	}
	if got := (SiteKey{Type: "int"}).String(); got != "int" {
		t.Errorf("String() = %q", got)
	}
}

func TestRegistry_RegisterConsume(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	site := SiteKey{Namespace: "example.com/tool", Type: "Tmux"}
	specs := []ArgSpec{Arg("session")}

	reg.Register(site, "attach", nopHandler, specs, "attach a session")
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}

	if peeked, ok := reg.Peek(site); !ok || peeked.Keyword != "attach" || reg.Len() != 1 {
		t.Fatalf("Peek() = %+v, %v; should leave the entry staged", peeked, ok)
	}
	if _, ok := reg.Peek(SiteKey{Type: "Other"}); ok {
		t.Error("Peek() of an unknown site should report false")
	}

	decl, err := reg.Consume(site)
	if err != nil {
		t.Fatalf("Consume() returned error: %v", err)
	}
	if decl.Site != site || decl.Keyword != "attach" || decl.Help != "attach a session" || decl.Handler == nil {
		t.Errorf("Consume() = %+v", decl)
	}
	if len(decl.Specs) != 1 {
		t.Fatalf("Specs = %v, want one spec", decl.Specs)
	}
	if reg.Len() != 0 || len(reg.Pending()) != 0 {
		t.Errorf("registry should be empty after Consume, pending %v", reg.Pending())
	}

	_, err = reg.Consume(site)
	if !errors.Is(err, ErrLookup) || !errors.Is(err, ErrDefinition) {
		t.Errorf("second Consume() error = %v, want ErrLookup", err)
	}
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Site != site {
		t.Errorf("error = %#v, want *LookupError for %v", err, site)
	}
}

func TestRegistry_OverwriteAndPending(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a := SiteKey{Namespace: "pkg", Type: "A"}
	b := SiteKey{Namespace: "pkg", Type: "B"}

	reg.Register(a, "first", nopHandler, nil, "")
	reg.Register(b, "other", nopHandler, nil, "")
	reg.Register(a, "second", nopHandler, nil, "")

	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
	if got, want := reg.Pending(), []SiteKey{a, b}; !reflect.DeepEqual(got, want) {
		t.Errorf("Pending() = %v, want %v", got, want)
	}

	decl, err := reg.Consume(a)
	if err != nil {
		t.Fatalf("Consume() returned error: %v", err)
	}
	if decl.Keyword != "second" {
		t.Errorf("Keyword = %q, want the later registration", decl.Keyword)
	}
	if got, want := reg.Pending(), []SiteKey{b}; !reflect.DeepEqual(got, want) {
		t.Errorf("Pending() = %v, want %v", got, want)
	}
}
