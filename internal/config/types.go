// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelFatal LogLevel = "fatal"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidManifestPath is returned when a manifest entry is blank.
	ErrInvalidManifestPath = errors.New("invalid manifest path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level of records the CLI logger emits. The
	// values match the level names understood by charmbracelet/log.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ManifestPath is a filesystem path to a TOML manifest.
	ManifestPath string

	// InvalidManifestPathError is returned for empty or whitespace-only
	// manifest entries.
	InvalidManifestPathError struct {
		Value ManifestPath
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// LogLevel sets the minimum level written by the CLI logger
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// Manifests lists TOML files whose modules join the command tree
		Manifests []ManifestPath `json:"manifests" mapstructure:"manifests"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Script configures manifest script execution
		Script ScriptConfig `json:"script" mapstructure:"script"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// MarkdownHelp renders issue help as Markdown instead of plain text
		MarkdownHelp bool `json:"markdown_help" mapstructure:"markdown_help"`
	}

	// ScriptConfig configures the virtual shell that runs manifest scripts.
	ScriptConfig struct {
		// Dir is the working directory of scripts; empty means the current one
		Dir string `json:"dir" mapstructure:"dir"`
		// InheritEnv passes the process environment to scripts
		InheritEnv bool `json:"inherit_env" mapstructure:"inherit_env"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is a known level name.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelFatal:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error, fatal)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error {
	return ErrInvalidLogLevel
}

// String returns the string representation of the ManifestPath.
func (p ManifestPath) String() string { return string(p) }

// IsValid returns whether the ManifestPath is non-blank.
func (p ManifestPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidManifestPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidManifestPathError.
func (e *InvalidManifestPathError) Error() string {
	return fmt.Sprintf("invalid manifest path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidManifestPath for errors.Is() compatibility.
func (e *InvalidManifestPathError) Unwrap() error { return ErrInvalidManifestPath }

// IsValid returns whether the Config has valid fields. It delegates to
// LogLevel.IsValid(), each manifest entry and UI.ColorScheme.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, m := range c.Manifests {
		if valid, fieldErrs := m.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig plus every field error, so errors.Is
// matches both the config sentinel and the field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  LogLevelWarn,
		Manifests: []ManifestPath{},
		UI: UIConfig{
			ColorScheme:  ColorSchemeAuto,
			Verbose:      false,
			MarkdownHelp: true,
		},
		Script: ScriptConfig{
			Dir:        "",
			InheritEnv: true,
		},
	}
}
