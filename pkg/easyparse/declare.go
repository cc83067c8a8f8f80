// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

type (
	// Instance is a mounted module: the user's value together with the module
	// node that hosts it. Its command handler receives the Instance, so it
	// can reach both its own state (Value) and the node (Module).
	Instance[T any] struct {
		*Module
		Value T
	}

	// MethodFunc is a command handler declared for type T and bound to the
	// Instance it is mounted as.
	MethodFunc[T any] func(ctx context.Context, self *Instance[T], args Args) error
)

// Declare stages the command that modules mounted from T will run. The
// declaration is keyed by T's declaration site and must be consumed by a
// later Mount of exactly T. The keyword and specs are checked here, so an
// invalid declaration is never staged.
func Declare[T any](reg *Registry, keyword, help string, method MethodFunc[T], specs ...ArgSpec) error {
	site, err := SiteOf[T]()
	if err != nil {
		return err
	}
	if method == nil {
		return definitionErr("declare command", "", keyword, fmt.Errorf("nil handler for %s", site))
	}
	if err := checkKeyword(keyword); err != nil {
		return definitionErr("declare command", "", keyword, err)
	}
	if _, err := compileSpecs(specs); err != nil {
		return definitionErr("declare command", "", keyword, err)
	}
	handler := func(ctx context.Context, owner any, args Args) error {
		self, ok := owner.(*Instance[T])
		if !ok {
			return fmt.Errorf("command %q bound to %T, want *Instance[%s]", keyword, owner, site.Type)
		}
		return method(ctx, self, args)
	}
	reg.stage(Declaration{
		Site:    site,
		Type:    reflect.TypeFor[T](),
		Keyword: keyword,
		Handler: handler,
		Specs:   specs,
		Help:    help,
	})
	return nil
}

// Mount creates a module under parent that hosts value. It attaches the
// command staged for T with Declare as a bound command and consumes the
// declaration only once the module is in place. T must match the declared
// type exactly: a declaration for *V cannot be mounted from a V.
func Mount[T any](parent *Module, reg *Registry, key, help string, value T) (*Instance[T], error) {
	if parent == nil {
		return nil, definitionErr("mount module", "", key, errors.New("nil parent"))
	}
	if err := parent.checkKey("mount module", key); err != nil {
		return nil, err
	}
	site, err := SiteOf[T]()
	if err != nil {
		return nil, err
	}
	decl, ok := reg.Peek(site)
	if !ok {
		return nil, &LookupError{Site: site}
	}
	if want := reflect.TypeFor[T](); decl.Type != nil && decl.Type != want {
		return nil, definitionErr("mount module", parent.path, key,
			fmt.Errorf("command %q was declared for %s, not %s", decl.Keyword, decl.Type, want))
	}

	inst := &Instance[T]{Module: parent.child(key, help), Value: value}
	inst.owner = inst
	if err := inst.attach(decl.Keyword, decl.Handler, decl.Specs, true, decl.Help); err != nil {
		return nil, err
	}
	if _, err := reg.Consume(site); err != nil {
		return nil, err
	}
	parent.insert(key, inst.Module)
	parent.tree.logger.Debug("module mounted", "path", inst.path, "site", site.String())
	return inst, nil
}

// AddModule mounts value under the parser's root.
func AddModule[T any](p *Parser, key, help string, value T) (*Instance[T], error) {
	return Mount(p.root, p.registry, key, help, value)
}
