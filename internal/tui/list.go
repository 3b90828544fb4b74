package tui

import (
	"fmt"
	"io"
	"strings"

	"slate-cli/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// newList builds a list.Model with the chrome we do not want switched off:
// no title bar, no status bar, no built-in help, and esc left alone so the
// app decides what back means.
func newList(items []list.Item, delegate list.ItemDelegate, width, height int) list.Model {
	l := list.New(items, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"))
	l.KeyMap.CursorUp = key.NewBinding(key.WithKeys("up", "k", "ctrl+p"))
	l.KeyMap.CursorDown = key.NewBinding(key.WithKeys("down", "j", "ctrl+n"))
	return l
}

// recordItem adapts a backend record to list.Item. title/desc are computed at
// construction so the delegate stays a dumb renderer.
type recordItem struct {
	rec   model.Record
	kind  model.Kind
	title string
	desc  string
}

func (i recordItem) Title() string       { return i.title }
func (i recordItem) Description() string { return i.desc }
func (i recordItem) FilterValue() string { return i.title + " " + i.desc }

func newRecordItem(kind model.Kind, rec model.Record) recordItem {
	it := recordItem{rec: rec, kind: kind}
	switch kind {
	case model.KindProject:
		it.title = rec.Str("name")
		it.desc = rec.Str("description")
	case model.KindSequence:
		it.title = rec.Str("name")
		it.desc = rec.Str("description")
	case model.KindShot:
		it.title = rec.Str("name")
		fi, fo := rec.Str("frame_in"), rec.Str("frame_out")
		if fi != "" || fo != "" {
			it.desc = fmt.Sprintf("%s-%s", fi, fo)
		}
	case model.KindAsset:
		it.title = rec.Str("name")
		it.desc = rec.Str("type")
	case model.KindPerson:
		it.title = rec.Str("name")
		it.desc = strings.TrimSpace(rec.Str("role") + " " + rec.Str("email"))
	case model.KindViewer:
		it.title = rec.Str("email")
		it.desc = "viewer"
	case model.KindTask:
		it.title = rec.Str("name")
		it.desc = rec.Str("assignee")
	default:
		it.title = rec.Str("name")
	}
	if it.title == "" {
		it.title = fmt.Sprintf("#%d", rec.ID())
	}
	return it
}

func recordItems(kind model.Kind, recs []model.Record) []list.Item {
	items := make([]list.Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, newRecordItem(kind, rec))
	}
	return items
}

// recordDelegate renders one record per row: status glyph, title, then a
// muted description, truncated to the list width.
type recordDelegate struct{}

func (d recordDelegate) Height() int                             { return 1 }
func (d recordDelegate) Spacing() int                            { return 0 }
func (d recordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d recordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(recordItem)
	if !ok {
		return
	}
	selected := index == m.Index()

	var b strings.Builder
	if defs := model.StatusDefs(it.kind); defs != nil {
		id := it.rec.Str("status")
		glyph := styleMuted().Render("·")
		if color := model.StatusColor(it.kind, id); color != "" {
			glyph = styleStatus(color).Render("●")
		}
		b.WriteString(glyph)
		b.WriteString(" ")
	}
	b.WriteString(it.title)
	if it.desc != "" {
		b.WriteString("  ")
		b.WriteString(styleMuted().Render(it.desc))
	}

	line := b.String()
	width := m.Width() - 2
	if width > 0 && xansi.StringWidth(line) > width {
		line = xansi.Cut(line, 0, width)
	}

	if selected {
		line = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg).
			Render("▌" + line)
	} else {
		line = " " + line
	}
	fmt.Fprint(w, line)
}

// statusItem is a row in the status picker.
type statusItem struct{ def model.StatusDef }

func (i statusItem) Title() string       { return i.def.Label }
func (i statusItem) Description() string { return "" }
func (i statusItem) FilterValue() string { return i.def.Label }

type statusDelegate struct{}

func (d statusDelegate) Height() int                             { return 1 }
func (d statusDelegate) Spacing() int                            { return 0 }
func (d statusDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d statusDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(statusItem)
	if !ok {
		return
	}
	line := styleStatus(it.def.Color).Render("●") + " " + it.def.Label
	if index == m.Index() {
		line = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg).
			Render("▌" + line)
	} else {
		line = " " + line
	}
	fmt.Fprint(w, line)
}

// actionItem is a row in the actions panel.
type actionItem struct{ act action }

func (i actionItem) Title() string       { return i.act.label() }
func (i actionItem) Description() string { return "" }
func (i actionItem) FilterValue() string { return i.act.label() }

type actionDelegate struct{}

func (d actionDelegate) Height() int                             { return 1 }
func (d actionDelegate) Spacing() int                            { return 0 }
func (d actionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d actionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(actionItem)
	if !ok {
		return
	}
	line := it.act.label()
	if index == m.Index() {
		line = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg).
			Render("▌" + line)
	} else {
		line = " " + line
	}
	fmt.Fprint(w, line)
}
