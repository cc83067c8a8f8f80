// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"fmt"
	"reflect"
)

type (
	// SiteKey identifies a declaration site: the package and type a staged
	// command belongs to.
	SiteKey struct {
		Namespace string
		Type      string
	}

	// Declaration is a staged command waiting for its module builder.
	Declaration struct {
		Site SiteKey
		// Type is the exact type given to Declare. It is nil for entries
		// added with Register.
		Type    reflect.Type
		Keyword string
		Handler MethodHandler
		Specs   []ArgSpec
		Help    string
	}

	// Registry stages command declarations until the module that hosts them
	// is mounted. Each entry is written once and consumed once.
	Registry struct {
		entries map[SiteKey]Declaration
		order   []SiteKey
	}
)

// String returns "namespace.Type".
func (k SiteKey) String() string {
	if k.Namespace == "" {
		return k.Type
	}
	return k.Namespace + "." + k.Type
}

// SiteOf returns the declaration site of T. Pointer types resolve to their
// element type, so T and *T share a site.
func SiteOf[T any]() (SiteKey, error) {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return SiteKey{}, definitionErr("resolve declaration site", "", "",
			fmt.Errorf("type %s has no name", t))
	}
	return SiteKey{Namespace: t.PkgPath(), Type: t.Name()}, nil
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[SiteKey]Declaration)}
}

// Register stages a command for site. Registering the same site again
// replaces the earlier entry.
func (r *Registry) Register(site SiteKey, keyword string, handler MethodHandler, specs []ArgSpec, help string) {
	r.stage(Declaration{Site: site, Keyword: keyword, Handler: handler, Specs: specs, Help: help})
}

func (r *Registry) stage(decl Declaration) {
	if _, ok := r.entries[decl.Site]; !ok {
		r.order = append(r.order, decl.Site)
	}
	decl.Specs = append([]ArgSpec(nil), decl.Specs...)
	r.entries[decl.Site] = decl
}

// Peek returns the declaration staged for site without removing it.
func (r *Registry) Peek(site SiteKey) (Declaration, bool) {
	decl, ok := r.entries[site]
	return decl, ok
}

// Consume returns the declaration staged for site and removes it.
func (r *Registry) Consume(site SiteKey) (Declaration, error) {
	decl, ok := r.entries[site]
	if !ok {
		return Declaration{}, &LookupError{Site: site}
	}
	delete(r.entries, site)
	for i, k := range r.order {
		if k == site {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return decl, nil
}

// Pending returns the sites that were registered but never consumed, in
// registration order.
func (r *Registry) Pending() []SiteKey {
	return append([]SiteKey(nil), r.order...)
}

// Len returns the number of staged declarations.
func (r *Registry) Len() int {
	return len(r.entries)
}
