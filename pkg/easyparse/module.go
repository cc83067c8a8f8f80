// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/charmbracelet/log"
)

const (
	// RootPath is the absolute path of the root module.
	RootPath = "/"
	// DefaultHelp is shown for modules and commands declared without help.
	DefaultHelp = "No doc provided"

	rootLevel = -1
)

type (
	// Module is a namespace in the command tree. It owns its commands and
	// submodules; keywords are unique across both at one node.
	Module struct {
		tree  *tree
		path  string
		help  string
		level int
		// owner is what bound handlers receive: the module itself, or the
		// *Instance[T] composite for mounted modules.
		owner any

		commands     map[string]*Command
		commandOrder []string
		submodules   map[string]*Module
		moduleOrder  []string
	}

	// tree holds the state shared by every node of one Parser.
	tree struct {
		out    io.Writer
		logger *log.Logger
		sealed bool
	}
)

func newModule(t *tree, name, help string, level int) *Module {
	m := &Module{
		tree:       t,
		path:       name,
		help:       helpOrDefault(help),
		level:      level,
		commands:   make(map[string]*Command),
		submodules: make(map[string]*Module),
	}
	m.owner = m
	return m
}

func helpOrDefault(help string) string {
	if help == "" {
		return DefaultHelp
	}
	return help
}

// Path returns the absolute path of the module.
func (m *Module) Path() string { return m.path }

// Help returns the module description.
func (m *Module) Help() string { return m.help }

// Level returns the depth of the module; the root is at -1.
func (m *Module) Level() int { return m.level }

// Commands returns the module's commands in insertion order.
func (m *Module) Commands() []*Command {
	out := make([]*Command, 0, len(m.commandOrder))
	for _, key := range m.commandOrder {
		out = append(out, m.commands[key])
	}
	return out
}

// Submodules returns the module's direct children in insertion order.
func (m *Module) Submodules() []*Module {
	out := make([]*Module, 0, len(m.moduleOrder))
	for _, key := range m.moduleOrder {
		out = append(out, m.submodules[key])
	}
	return out
}

// Command returns the command registered under key.
func (m *Module) Command(key string) (*Command, bool) {
	c, ok := m.commands[key]
	return c, ok
}

// Submodule returns the child module registered under key.
func (m *Module) Submodule(key string) (*Module, bool) {
	s, ok := m.submodules[key]
	return s, ok
}

// Lookup walks keys down the submodule tree and returns the module reached.
func (m *Module) Lookup(keys ...string) (*Module, bool) {
	cur := m
	for _, key := range keys {
		next, ok := cur.submodules[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Walk calls fn for m and every descendant in pre-order, stopping at the
// first error.
func (m *Module) Walk(fn func(*Module) error) error {
	if err := fn(m); err != nil {
		return err
	}
	for _, key := range m.moduleOrder {
		if err := m.submodules[key].Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// checkKey validates key for insertion at m.
func (m *Module) checkKey(op, key string) error {
	if m.tree.sealed {
		return definitionErr(op, m.path, key, ErrTreeSealed)
	}
	if err := checkKeyword(key); err != nil {
		return definitionErr(op, m.path, key, err)
	}
	if _, ok := m.submodules[key]; ok {
		return definitionErr(op, m.path, key, fmt.Errorf("%w: module %q exists in %s", ErrDuplicateKeyword, key, m.path))
	}
	if _, ok := m.commands[key]; ok {
		return definitionErr(op, m.path, key, fmt.Errorf("%w: command %q exists in %s", ErrDuplicateKeyword, key, m.path))
	}
	return nil
}

func (m *Module) child(key, help string) *Module {
	return newModule(m.tree, path.Join(m.path, key), help, m.level+1)
}

func (m *Module) insert(key string, sub *Module) {
	m.submodules[key] = sub
	m.moduleOrder = append(m.moduleOrder, key)
}

// NewSubmodule creates a child module under key and returns it so the caller
// can keep building on it.
func (m *Module) NewSubmodule(key, help string) (*Module, error) {
	if err := m.checkKey("add module", key); err != nil {
		return nil, err
	}
	sub := m.child(key, help)
	m.insert(key, sub)
	m.tree.logger.Debug("module added", "path", sub.path)
	return sub, nil
}

// AttachCommand registers a free command under key.
func (m *Module) AttachCommand(key, help string, handler HandlerFunc, specs ...ArgSpec) error {
	if handler == nil {
		return definitionErr("add command", m.path, key, errors.New("nil handler"))
	}
	free := func(ctx context.Context, _ any, args Args) error {
		return handler(ctx, args)
	}
	return m.attach(key, free, specs, false, help)
}

func (m *Module) attach(key string, handler MethodHandler, specs []ArgSpec, bound bool, help string) error {
	if err := m.checkKey("add command", key); err != nil {
		return err
	}
	cmd, err := newCommand(key, help, handler, specs, bound)
	if err != nil {
		return definitionErr("add command", m.path, key, err)
	}
	m.commands[key] = cmd
	m.commandOrder = append(m.commandOrder, key)
	m.tree.logger.Debug("command added", "path", m.path, "command", key, "bound", bound)
	return nil
}

// Dispatch resolves tokens against the subtree rooted at m. Empty or
// unmatched input prints the subtree description. Malformed command
// arguments print the description of the node owning the command and
// return nil. Errors returned by a handler are wrapped in *CommandError.
func (m *Module) Dispatch(ctx context.Context, tokens []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(tokens) == 0 {
		m.tree.logger.Debug("no tokens left", "path", m.path)
		return m.printHelp()
	}

	head, rest := tokens[0], tokens[1:]
	if sub, ok := m.submodules[head]; ok {
		return sub.Dispatch(ctx, rest)
	}
	if cmd, ok := m.commands[head]; ok {
		return m.run(ctx, cmd, rest)
	}

	m.tree.logger.Debug("unknown keyword", "path", m.path, "keyword", head)
	return m.printHelp()
}

func (m *Module) run(ctx context.Context, cmd *Command, tokens []string) error {
	args, err := cmd.Bind(tokens)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			m.tree.logger.Warn("invalid arguments", "path", m.path, "command", cmd.keyword, "err", argErr.Err)
			return m.printHelp()
		}
		var defErr *DefinitionError
		if errors.As(err, &defErr) && defErr.Path == "" {
			defErr.Path = m.path
		}
		return err
	}

	var owner any
	if cmd.bound {
		owner = m.owner
	}
	m.tree.logger.Debug("running command", "path", m.path, "command", cmd.keyword)
	if err := cmd.handler(ctx, owner, args); err != nil {
		return &CommandError{Path: m.path, Keyword: cmd.keyword, Err: err}
	}
	return nil
}

func (m *Module) printHelp() error {
	if _, err := io.WriteString(m.tree.out, m.Render()); err != nil {
		return fmt.Errorf("write help: %w", err)
	}
	return nil
}
