package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor pairs and "faint" styling is only
// applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorSurfaceBg      lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg      lipgloss.TerminalColor = ac("235", "252")
	colorAccent         lipgloss.TerminalColor = ac("27", "62")
	colorErrorFg        lipgloss.TerminalColor = ac("160", "203")
	colorModalBorder    lipgloss.TerminalColor = ac("250", "243")
	colorFieldLabelFg   lipgloss.TerminalColor = ac("238", "250")
	colorTabInactiveFg  lipgloss.TerminalColor = ac("244", "244")
	colorEditingFieldBg lipgloss.TerminalColor = ac("254", "234")
)

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleStatus(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// applyColorProfilePreference respects CLICOLOR/NO_COLOR so scripted captures
// of the TUI stay clean.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
