// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type (
	// Parser owns the root module and dispatches token lists through it.
	Parser struct {
		root     *Module
		registry *Registry
		tree     *tree
	}

	// Option configures a Parser.
	Option func(*Parser)
)

// WithOutput sets where rendered help is written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Parser) {
		if w != nil {
			p.tree.out = w
		}
	}
}

// WithLogger sets the logger used for resolution diagnostics. The default
// logger discards everything.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.tree.logger = l
		}
	}
}

// WithRegistry replaces the parser's own registry, letting declarations be
// staged before the parser exists.
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		if r != nil {
			p.registry = r
		}
	}
}

// New creates a parser whose root module carries help.
func New(help string, opts ...Option) *Parser {
	t := &tree{
		out:    os.Stdout,
		logger: log.New(io.Discard),
	}
	p := &Parser{
		registry: NewRegistry(),
		tree:     t,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.root = newModule(t, RootPath, help, rootLevel)
	return p
}

// Root returns the root module.
func (p *Parser) Root() *Module { return p.root }

// Registry returns the registry Declare and AddModule stage through.
func (p *Parser) Registry() *Registry { return p.registry }

// NewModule creates a module directly under the root.
func (p *Parser) NewModule(key, help string) (*Module, error) {
	return p.root.NewSubmodule(key, help)
}

// Render describes the whole tree.
func (p *Parser) Render() string {
	return p.root.Render()
}

// Verify reports declarations staged in the registry that no module
// consumed.
func (p *Parser) Verify() error {
	pending := p.registry.Pending()
	if len(pending) == 0 {
		return nil
	}
	sites := make([]string, 0, len(pending))
	for _, site := range pending {
		sites = append(sites, site.String())
	}
	return definitionErr("verify declarations", RootPath, "",
		fmt.Errorf("%w: %s", ErrDanglingDeclaration, strings.Join(sites, ", ")))
}

// Parse dispatches tokens through the tree. A nil tokens slice means the
// process arguments without the program name. The first call seals the tree.
func (p *Parser) Parse(ctx context.Context, tokens []string) error {
	if len(p.root.submodules) == 0 {
		return definitionErr("parse", RootPath, "", ErrNoModules)
	}
	if err := p.Verify(); err != nil {
		return err
	}
	if tokens == nil {
		tokens = os.Args[1:]
	}
	p.tree.sealed = true
	return p.root.Dispatch(ctx, tokens)
}
