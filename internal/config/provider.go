// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions selects where configuration comes from. The zero value
	// reads the platform config directory.
	LoadOptions struct {
		// ConfigFilePath names the config file; it must exist when set.
		ConfigFilePath string
		// ConfigDirPath replaces the platform config directory when set.
		ConfigDirPath string
	}

	// Loaded is a validated configuration and the file it was read from.
	Loaded struct {
		*Config
		// Source is the file that was read, or "" when only defaults and
		// environment overrides applied.
		Source string
	}

	// Provider loads configuration. The CLI takes a Provider so tests can
	// substitute fixed configurations.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Loaded, error)
	}

	fileProvider struct{}
)

// NewProvider returns the Provider that reads CUE files from disk.
func NewProvider() Provider {
	return fileProvider{}
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	cfg, source, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Source: source}, nil
}
