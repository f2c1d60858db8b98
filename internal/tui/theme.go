package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The dashboard must remain readable on both light and dark terminal
// backgrounds. We use lipgloss.AdaptiveColor where possible and only apply
// "faint" styling on dark backgrounds (faint text on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "62") // blue
	colorAccentFg   lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorTabBar     lipgloss.TerminalColor = ac("252", "236")
	colorPositive   lipgloss.TerminalColor = ac("28", "40")   // green
	colorNegative   lipgloss.TerminalColor = ac("160", "203") // red
	colorWarning    lipgloss.TerminalColor = ac("130", "214") // orange
	colorModalFrame lipgloss.TerminalColor = ac("232", "255")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleActiveTab() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorAccentFg).
		Background(colorAccent).
		Padding(0, 1).
		Bold(true)
}

func styleInactiveTab() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorTabBar).
		Padding(0, 1)
}

func styleModal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalFrame).
		Padding(1, 2)
}

func styleMoneyPositive() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPositive)
}

func styleMoneyNegative() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorNegative)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive dashboard.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors
// in a TUI. Here we only honor NO_COLOR and otherwise follow the terminal's
// capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
