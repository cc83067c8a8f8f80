// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/easyparse/easyparse/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Palette entries adapt to the terminal background.
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#7C3AED"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#6B7280"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3B82F6"}
)

// Output styles. CmdStyle marks module paths, keywords and config keys.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CmdStyle      = lipgloss.NewStyle().Foreground(ColorHighlight)
)

// glamourStyle maps the configured color scheme to a glamour standard style.
// Glamour cannot probe the background here, so auto renders dark.
func glamourStyle(scheme config.ColorScheme) string {
	if scheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}
