package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type mdKey struct {
	style string
	width int
}

var (
	mdMu        sync.Mutex
	mdRenderers = map[mdKey]*glamour.TermRenderer{}
)

// renderMarkdown renders note bodies through glamour. Renderers are cached by
// style+width since construction is expensive, and we pin a standard style so
// glamour never queries the terminal mid-frame.
func renderMarkdown(src string, width int) string {
	if width < 10 {
		width = 10
	}
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	mdMu.Lock()
	r := mdRenderers[mdKey{style, width}]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdMu.Unlock()
			return src
		}
		mdRenderers[mdKey{style, width}] = r
	}
	mdMu.Unlock()

	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
