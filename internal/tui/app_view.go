package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"slate-cli/internal/fieldmap"
	"slate-cli/internal/model"
	"slate-cli/internal/mutate"
)

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}

	var body string
	switch m.view {
	case viewProjects:
		body = m.viewProjects()
	case viewEntities:
		body = m.viewEntities()
	case viewDetail:
		body = m.viewDetail()
	}

	frame := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)

	switch m.modal {
	case modalStatusPicker:
		return renderModalBox(m.width, m.height, "Set status\n\n"+m.statusList.View())
	case modalConfirmDelete:
		prompt := fmt.Sprintf("Delete this %s?", m.confirmKind)
		return renderConfirmModal(m.width, m.height, prompt, m.confirmYes)
	case modalCreate:
		return renderModalBox(m.width, m.height, m.renderCreateForm())
	case modalNote:
		return renderModalBox(m.width, m.height, m.renderNoteForm())
	case modalActions:
		return renderModalBox(m.width, m.height, "Actions\n\n"+m.actionsList.View())
	}
	return frame
}

func (m appModel) renderHeader() string {
	title := "slate"
	if m.project != nil && m.view != viewProjects {
		title += " · " + m.project.Str("name")
	}
	if m.view == viewDetail {
		title += " · " + m.detail.Str("name")
	}
	line := lipgloss.NewStyle().Bold(true).Render(title)
	if m.loading {
		line += "  " + styleMuted().Render("loading…")
	}
	return line + "\n"
}

func (m appModel) renderFooter() string {
	if m.notice != "" {
		if m.noticeErr {
			return "\n" + styleError().Render(m.notice)
		}
		return "\n" + styleMuted().Render(m.notice)
	}

	var help string
	switch m.view {
	case viewProjects:
		help = "enter open · n new · / filter · r reload · q quit"
	case viewEntities:
		help = "enter open · tab switch · s status · n new · x actions · esc back"
	case viewDetail:
		if m.edit.State() == mutate.EditEditing {
			help = "enter save · esc cancel"
		} else {
			help = "enter edit · s status · tab info/tasks/notes · esc back"
		}
	}
	return "\n" + styleMuted().Render(help)
}

func (m appModel) viewProjects() string {
	if m.err != nil {
		return "\n " + styleError().Render("could not load projects: "+m.err.Error()) +
			"\n\n " + styleMuted().Render("r retry · q quit")
	}
	return m.projectsList.View()
}

func (m appModel) viewEntities() string {
	return m.renderTabBar() + "\n" + m.entityList.View()
}

func (m appModel) renderTabBar() string {
	active := lipgloss.NewStyle().Bold(true).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(colorTabInactiveFg)

	parts := make([]string, 0, len(entityTabs))
	for _, t := range entityTabs {
		label := t.title()
		if recs, ok := m.entities[t.kind()]; ok {
			label = fmt.Sprintf("%s %d", label, len(recs))
		}
		if t == m.tab {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, inactive.Render(label))
		}
	}
	return " " + strings.Join(parts, styleMuted().Render("  │  "))
}

func (m appModel) viewDetail() string {
	tabs := []struct {
		t     detailTab
		label string
	}{
		{detailTabInfo, "Info"},
		{detailTabTasks, fmt.Sprintf("Tasks %d", len(m.tasks))},
		{detailTabNotes, fmt.Sprintf("Notes %d", len(m.notes))},
	}
	active := lipgloss.NewStyle().Bold(true).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(colorTabInactiveFg)
	parts := make([]string, 0, len(tabs))
	for _, tb := range tabs {
		if tb.t == m.detailTab {
			parts = append(parts, active.Render(tb.label))
		} else {
			parts = append(parts, inactive.Render(tb.label))
		}
	}
	bar := " " + strings.Join(parts, styleMuted().Render("  │  "))

	var body string
	switch m.detailTab {
	case detailTabInfo:
		body = m.renderFields()
	case detailTabTasks:
		body = m.renderTasks()
	case detailTabNotes:
		body = m.renderNotes()
	}
	return bar + "\n\n" + body
}

func (m appModel) renderFields() string {
	fields := fieldmap.Fields(m.detailKind)
	labelStyle := lipgloss.NewStyle().Foreground(colorFieldLabelFg).Width(14)
	editingStyle := lipgloss.NewStyle().Background(colorEditingFieldBg)

	var b strings.Builder
	for i, field := range fields {
		cursor := "  "
		if i == m.fieldCursor {
			cursor = lipgloss.NewStyle().Foreground(colorAccent).Render("▌ ")
		}

		var value string
		switch {
		case m.edit.State() == mutate.EditEditing && m.edit.Field() == field:
			value = editingStyle.Render(m.editInput.View())
		case field == "status":
			id := m.detail.Str("status")
			label := model.StatusLabel(m.detailKind, id)
			if color := model.StatusColor(m.detailKind, id); color != "" {
				value = styleStatus(color).Render("● " + label)
			} else {
				value = styleMuted().Render("—")
			}
		case field == "description":
			value = m.detail.Str(field)
		default:
			value = m.detail.Str(field)
			if value == "" {
				value = styleMuted().Render("—")
			}
			if !fieldmap.Editable(m.detailKind, field) {
				value += " " + styleMuted().Render("(read-only)")
			}
		}

		line := cursor + labelStyle.Render(field) + value
		if m.width > 2 && xansi.StringWidth(line) > m.width-2 {
			line = xansi.Cut(line, 0, m.width-2)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) renderTasks() string {
	if len(m.tasks) == 0 {
		return " " + styleMuted().Render("no tasks · n to add one")
	}
	var b strings.Builder
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.taskCursor {
			cursor = lipgloss.NewStyle().Foreground(colorAccent).Render("▌ ")
		}
		glyph := styleMuted().Render("·")
		id := t.Str("status")
		if color := model.StatusColor(model.KindTask, id); color != "" {
			glyph = styleStatus(color).Render("●")
		}
		line := cursor + glyph + " " + t.Str("name")
		if a := t.Str("assignee"); a != "" {
			line += "  " + styleMuted().Render(a)
		}
		if lbl := model.StatusLabel(model.KindTask, id); lbl != "" {
			line += "  " + styleMuted().Render(lbl)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) renderNotes() string {
	if len(m.notes) == 0 {
		return " " + styleMuted().Render("no notes · n to add one")
	}
	width := min(m.width-6, 80)
	var b strings.Builder
	for i, n := range m.notes {
		cursor := "  "
		if i == m.noteCursor {
			cursor = lipgloss.NewStyle().Foreground(colorAccent).Render("▌ ")
		}
		head := cursor + lipgloss.NewStyle().Bold(true).Render(n.Str("subject"))
		if a := n.Str("author"); a != "" {
			head += "  " + styleMuted().Render(a)
		}
		b.WriteString(head)
		b.WriteString("\n")
		if i == m.noteCursor {
			if body := n.Str("body"); body != "" {
				b.WriteString(renderMarkdown(body, width))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m appModel) renderCreateForm() string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s\n\n", m.createKind)
	labelStyle := lipgloss.NewStyle().Foreground(colorFieldLabelFg).Width(12)
	for i, f := range m.createFields {
		b.WriteString(labelStyle.Render(f.label))
		b.WriteString(m.createInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.creating {
		b.WriteString(styleMuted().Render("creating…"))
	} else {
		b.WriteString(styleMuted().Render("enter submit · tab next · esc cancel"))
	}
	return b.String()
}

func (m appModel) renderNoteForm() string {
	var b strings.Builder
	b.WriteString("New note\n\n")
	b.WriteString(m.noteSubject.View())
	b.WriteString("\n\n")
	b.WriteString(m.noteBody.View())
	b.WriteString("\n\n")
	if m.creating {
		b.WriteString(styleMuted().Render("creating…"))
	} else {
		b.WriteString(styleMuted().Render("ctrl+s save · tab switch · esc cancel"))
	}
	return b.String()
}
