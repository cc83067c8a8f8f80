// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/easyparse/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/easyparse/config.cue on macOS, %APPDATA%\easyparse\config.cue
// on Windows). Files are validated against the embedded CUE schema (config_schema.cue) before
// being merged over the defaults, and every key can be overridden through EASYPARSE_* environment
// variables (EASYPARSE_LOG_LEVEL, EASYPARSE_UI_COLOR_SCHEME, ...).
package config
