// SPDX-License-Identifier: MPL-2.0

package easyparse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDefinition is matched by every error caused by a mistake in the tree
	// declaration itself. These errors are fatal at startup.
	ErrDefinition = errors.New("definition error")
	// ErrLookup is returned when a staged command declaration cannot be found.
	ErrLookup = errors.New("lookup error")
	// ErrArgument is matched by malformed user input to a command's parameters.
	ErrArgument = errors.New("argument error")
	// ErrCommandFailed is matched by errors returned from a command handler.
	ErrCommandFailed = errors.New("command failed")

	// ErrIllegalKeyword is returned when a keyword is not made of letters only.
	ErrIllegalKeyword = errors.New("illegal keyword")
	// ErrDuplicateKeyword is returned when a keyword already names a command
	// or a submodule at the same node.
	ErrDuplicateKeyword = errors.New("keyword already exists")
	// ErrNoModules is returned by Parse when the root has no submodules.
	ErrNoModules = errors.New("expected at least 1 module")
	// ErrDanglingDeclaration is returned when a staged command declaration was
	// never consumed by a module builder.
	ErrDanglingDeclaration = errors.New("command declared but never mounted")
	// ErrTreeSealed is returned when the tree is mutated after dispatch began.
	ErrTreeSealed = errors.New("tree is sealed")
	// ErrInvalidArgSpec is returned for argument specifications that cannot be
	// bound (mixed flag/positional names, bad defaults, misplaced variadics).
	ErrInvalidArgSpec = errors.New("invalid argument spec")
)

type (
	// DefinitionError describes a programming mistake in the tree declaration.
	// It matches ErrDefinition and its Err with errors.Is.
	DefinitionError struct {
		// Op is the builder operation that failed, e.g. "add module".
		Op string
		// Path is the absolute path of the node the operation targeted.
		Path string
		// Key is the keyword involved, if any.
		Key string
		Err error
	}

	// LookupError is returned by Registry.Consume for an unregistered site.
	// It matches both ErrLookup and ErrDefinition.
	LookupError struct {
		Site SiteKey
	}

	// ArgumentError wraps a failure to bind tokens to a command's parameters.
	// Dispatch recovers from it by printing the node description.
	ArgumentError struct {
		Command string
		Err     error
	}

	// CommandError wraps an error returned by a command handler after its
	// arguments were bound successfully.
	CommandError struct {
		Path    string
		Keyword string
		Err     error
	}
)

func definitionErr(op, path, key string, err error) *DefinitionError {
	return &DefinitionError{Op: op, Path: path, Key: key, Err: err}
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Op)
	if e.Path != "" {
		msg.WriteString(" at ")
		msg.WriteString(e.Path)
	}
	if e.Key != "" {
		fmt.Fprintf(&msg, " (%q)", e.Key)
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	return msg.String()
}

// Unwrap returns ErrDefinition and the underlying cause.
func (e *DefinitionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDefinition}
	}
	return []error{ErrDefinition, e.Err}
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("no command declared for %s", e.Site)
}

// Unwrap returns ErrLookup and ErrDefinition.
func (e *LookupError) Unwrap() []error {
	return []error{ErrLookup, ErrDefinition}
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("bind arguments for %q: %v", e.Command, e.Err)
}

// Unwrap returns ErrArgument and the underlying parse error.
func (e *ArgumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrArgument}
	}
	return []error{ErrArgument, e.Err}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q at %s: %v", e.Keyword, e.Path, e.Err)
}

// Unwrap returns ErrCommandFailed and the handler's error.
func (e *CommandError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}
