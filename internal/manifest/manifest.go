// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// maxManifestSize bounds manifest files before decoding.
const maxManifestSize = 4 << 20

type (
	// Manifest is a decoded manifest file. Top-level commands attach to the
	// module the manifest is applied to.
	Manifest struct {
		Commands []CommandSpec `toml:"command,omitempty"`
		Modules  []ModuleSpec  `toml:"module,omitempty"`

		path string
	}

	// ModuleSpec declares a module with its commands and nested modules.
	ModuleSpec struct {
		Key      string        `toml:"key"`
		Help     string        `toml:"help,omitempty"`
		Commands []CommandSpec `toml:"command,omitempty"`
		Modules  []ModuleSpec  `toml:"module,omitempty"`
	}

	// CommandSpec declares a command. Exactly one of Script and Handler
	// must be set when the manifest is applied.
	CommandSpec struct {
		Keyword string    `toml:"keyword"`
		Help    string    `toml:"help,omitempty"`
		Script  string    `toml:"script,omitempty"`
		Handler string    `toml:"handler,omitempty"`
		Args    []ArgDecl `toml:"arg,omitempty"`
	}

	// ArgDecl is the TOML form of an easyparse.ArgSpec.
	ArgDecl struct {
		Names    []string `toml:"names"`
		Type     string   `toml:"type,omitempty"`
		Default  any      `toml:"default,omitempty"`
		Required bool     `toml:"required,omitempty"`
		NArgs    string   `toml:"nargs,omitempty"`
		Help     string   `toml:"help,omitempty"`
	}
)

// Path returns the file the manifest was loaded from, or "" for manifests
// decoded from a reader.
func (m *Manifest) Path() string { return m.path }

// Load decodes a manifest from r. Unknown fields are rejected.
func Load(r io.Reader) (*Manifest, error) {
	return decode(r, "<input>")
}

// LoadFile reads and decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if len(data) > maxManifestSize {
		return nil, &ParseError{
			Path: path,
			Err:  fmt.Errorf("file size %d bytes exceeds maximum %d bytes", len(data), maxManifestSize),
		}
	}

	m, err := decode(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	m.path = path
	return m, nil
}

func decode(r io.Reader, name string) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, parseError(name, err)
	}
	return &m, nil
}

// parseError attaches the position go-toml reports to the error.
func parseError(name string, err error) *ParseError {
	pe := &ParseError{Path: name, Err: err}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		pe.Line, pe.Column = strict.Errors[0].Position()
		pe.Err = fmt.Errorf("unknown field %q", strings.Join(strict.Errors[0].Key(), "."))
		return pe
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
	}
	return pe
}
