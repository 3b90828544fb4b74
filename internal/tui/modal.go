package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderModalBox centers a bordered box over the existing frame. We overlay
// by recomposing whole lines rather than true compositing, which is fine for
// the opaque modals this app uses.
func renderModalBox(width, height int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalBorder).
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Padding(1, 2).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderConfirmModal(width, height int, prompt string, yesActive bool) string {
	btnBase := lipgloss.NewStyle().Padding(0, 2)
	btnActive := btnBase.
		Background(colorAccent).
		Foreground(lipgloss.Color("255")).
		Bold(true)

	yes, no := btnBase.Render("Delete"), btnBase.Render("Cancel")
	if yesActive {
		yes = btnActive.Render("Delete")
	} else {
		no = btnActive.Render("Cancel")
	}

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("←/→ choose · enter confirm · esc cancel"))
	return renderModalBox(width, height, b.String())
}
