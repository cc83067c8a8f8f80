// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		want    bool
		wantErr bool
	}{
		{ColorSchemeAuto, true, false},
		{ColorSchemeDark, true, false},
		{ColorSchemeLight, true, false},
		{"", false, true},
		{"invalid", false, true},
		{"AUTO", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ColorScheme(%q).IsValid() returned no errors, want error", tt.scheme)
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ColorScheme(%q).IsValid() returned unexpected errors: %v", tt.scheme, errs)
			}
		})
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  bool
	}{
		{LogLevelDebug, true},
		{LogLevelInfo, true},
		{LogLevelWarn, true},
		{LogLevelError, true},
		{LogLevelFatal, true},
		{"", false},
		{"trace", false},
		{"WARN", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.level.IsValid()
			if isValid != tt.want {
				t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.level, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidLogLevel)) {
				t.Errorf("LogLevel(%q).IsValid() errors = %v, want ErrInvalidLogLevel", tt.level, errs)
			}
		})
	}
}

func TestManifestPath_IsValid(t *testing.T) {
	t.Parallel()

	if ok, _ := ManifestPath("tools.toml").IsValid(); !ok {
		t.Error("ManifestPath(tools.toml) should be valid")
	}
	ok, errs := ManifestPath("  \t").IsValid()
	if ok {
		t.Fatal("whitespace-only ManifestPath should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidManifestPath) {
		t.Errorf("error should wrap ErrInvalidManifestPath, got: %v", errs[0])
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	if ok, errs := DefaultConfig().IsValid(); !ok {
		t.Fatalf("DefaultConfig() should be valid, got %v", errs)
	}

	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	cfg.Manifests = []ManifestPath{"ok.toml", " "}
	cfg.UI.ColorScheme = "sepia"

	ok, errs := cfg.IsValid()
	if ok {
		t.Fatal("Config with bad fields should be invalid")
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got: %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	for _, sentinel := range []error{ErrInvalidConfig, ErrInvalidLogLevel, ErrInvalidManifestPath, ErrInvalidColorScheme} {
		if !errors.Is(errs[0], sentinel) {
			t.Errorf("error should match %v", sentinel)
		}
	}
}
