// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a manifest file does not exist.
	ErrNotFound = errors.New("manifest not found")
	// ErrParse is the sentinel wrapped by ParseError.
	ErrParse = errors.New("manifest parse error")
	// ErrInvalid is the sentinel wrapped by ValidationError.
	ErrInvalid = errors.New("invalid manifest")
	// ErrNoAction means a command sets neither or both of script and handler.
	ErrNoAction = errors.New("command needs exactly one of script or handler")
	// ErrUnknownHandler means a command names a handler missing from the table.
	ErrUnknownHandler = errors.New("unknown handler")
	// ErrBadKeyword means a module key or command keyword is not letters only.
	ErrBadKeyword = errors.New("keyword must contain letters only")
)

type (
	// ParseError reports TOML that could not be decoded, including fields
	// the manifest format does not define.
	ParseError struct {
		Path   string
		Line   int
		Column int
		Err    error
	}

	// ValidationError reports a decoded manifest whose content cannot be
	// turned into modules. Location is the module path of the offending
	// entry, such as "/git/last".
	ValidationError struct {
		Path     string
		Location string
		Err      error
	}
)

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns ErrParse and the decoder error.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Location, e.Err)
}

// Unwrap returns ErrInvalid and the underlying cause.
func (e *ValidationError) Unwrap() []error { return []error{ErrInvalid, e.Err} }
