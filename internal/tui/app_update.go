package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"slate-cli/internal/fieldmap"
	"slate-cli/internal/model"
	"slate-cli/internal/mutate"
	"slate-cli/internal/perm"
	"slate-cli/internal/stash"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case projectsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.projects = msg.recs
		cmd := m.projectsList.SetItems(recordItems(model.KindProject, msg.recs))
		return m, cmd

	case collectionLoadedMsg:
		if m.project == nil || msg.projectID != m.project.ID() {
			// Result for a project that is no longer open.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.setNotice("load failed: "+msg.err.Error(), true)
		}
		m.entities[msg.kind] = msg.recs
		if m.view == viewEntities && m.tab.kind() == msg.kind {
			return m, m.entityList.SetItems(recordItems(msg.kind, msg.recs))
		}
		return m, nil

	case childrenLoadedMsg:
		if m.view != viewDetail || msg.parent != m.detailKind || m.detail == nil || msg.parentID != m.detail.ID() {
			// Result for a record that is no longer open.
			return m, nil
		}
		if msg.err != nil {
			return m, m.setNotice("load failed: "+msg.err.Error(), true)
		}
		switch msg.kind {
		case model.KindTask:
			m.tasks = msg.recs
			if m.taskCursor >= len(m.tasks) {
				m.taskCursor = 0
			}
		case model.KindNote:
			m.notes = msg.recs
			if m.noteCursor >= len(m.notes) {
				m.noteCursor = 0
			}
		}
		return m, nil

	case fieldUpdateDoneMsg:
		m.edit.Resolve()
		if msg.err != nil {
			if msg.rollback != nil {
				msg.rollback()
			}
			return m, tea.Batch(
				m.refreshEntityItems(),
				m.setNotice(fmt.Sprintf("update failed, reverted %s: %v", msg.field, msg.err), true),
			)
		}
		return m, m.refreshEntityItems()

	case createDoneMsg:
		m.creating = false
		if msg.err != nil {
			return m, m.setNotice("create failed: "+msg.err.Error(), true)
		}
		m.closeModal()
		return m, tea.Batch(
			m.reloadAfterCreate(msg.kind),
			m.setNotice("created", false),
		)

	case deleteDoneMsg:
		var cmds []tea.Cmd
		switch msg.kind {
		case model.KindNote:
			m.notes = msg.recs
			if m.noteCursor >= len(m.notes) && m.noteCursor > 0 {
				m.noteCursor--
			}
		case model.KindTask:
			m.tasks = msg.recs
			if m.taskCursor >= len(m.tasks) && m.taskCursor > 0 {
				m.taskCursor--
			}
		default:
			m.entities[msg.kind] = msg.recs
			if m.view == viewEntities && m.tab.kind() == msg.kind {
				cmds = append(cmds, m.entityList.SetItems(recordItems(msg.kind, msg.recs)))
			}
		}
		if msg.err != nil {
			cmds = append(cmds, m.setNotice("delete failed: "+msg.err.Error(), true))
		}
		return m, tea.Batch(cmds...)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}
	if m.view == viewDetail && m.edit.State() == mutate.EditEditing {
		return m.handleEditKey(msg)
	}

	switch m.view {
	case viewProjects:
		return m.handleProjectsKey(msg)
	case viewEntities:
		return m.handleEntitiesKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m appModel) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.projectsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.projectsList, cmd = m.projectsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		return m, loadProjects(m.client)
	case "n":
		m.openCreateModal(model.KindProject)
		return m, nil
	case "enter":
		it, ok := m.projectsList.SelectedItem().(recordItem)
		if !ok {
			return m, nil
		}
		return m, m.openProject(it.rec)
	}

	var cmd tea.Cmd
	m.projectsList, cmd = m.projectsList.Update(msg)
	return m, cmd
}

// openProject stashes the selection and enters the project workspace. The
// workspace itself reads only messages and the stash slot, never the
// projects list.
func (m *appModel) openProject(rec model.Record) tea.Cmd {
	_ = m.stash.Stash(stash.SlotProjectData, rec)
	m.project = rec
	m.view = viewEntities
	m.tab = tabSequences
	m.loading = true
	m.entityList.ResetFilter()
	cmds := []tea.Cmd{m.entityList.SetItems(nil)}
	for _, t := range entityTabs {
		cmds = append(cmds, loadCollection(m.client, t.kind(), rec.ID()))
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleEntitiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.entityList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.entityList, cmd = m.entityList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.view = viewProjects
		return m, nil
	case "tab", "right":
		return m, m.setTab((m.tab + 1) % entityTab(len(entityTabs)))
	case "shift+tab", "left":
		return m, m.setTab((m.tab + entityTab(len(entityTabs)) - 1) % entityTab(len(entityTabs)))
	case "1", "2", "3", "4":
		return m, m.setTab(entityTab(int(msg.String()[0] - '1')))
	case "r":
		return m, loadCollection(m.client, m.tab.kind(), m.project.ID())
	case "enter":
		kind, rec, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if slot, ok := stash.SlotForKind(kind); ok && kind != model.KindProject {
			_ = m.stash.Stash(slot, rec)
			return m, m.openDetail(kind)
		}
		return m, nil
	case "s", " ":
		kind, rec, ok := m.currentRow()
		if !ok || !m.caps.Can(perm.ActionEditFields) {
			return m, nil
		}
		m.openStatusPicker(kind, rec)
		return m, nil
	case "n":
		switch m.tab {
		case tabPeople:
			if !m.caps.Can(perm.ActionManagePeople) {
				return m, m.setNotice("your permission level cannot manage people", true)
			}
			m.openCreateModal(model.KindPerson)
		default:
			if !m.caps.Can(perm.ActionEditFields) {
				return m, m.setNotice("read-only access", true)
			}
			m.openCreateModal(m.tab.kind())
		}
		return m, nil
	case "v":
		if m.tab == tabPeople {
			if !m.caps.Can(perm.ActionAddViewers) {
				return m, m.setNotice("your permission level cannot add viewers", true)
			}
			m.openCreateModal(model.KindViewer)
		}
		return m, nil
	case "x":
		kind, rec, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		m.openActions(kind, rec)
		return m, nil
	}

	var cmd tea.Cmd
	m.entityList, cmd = m.entityList.Update(msg)
	return m, cmd
}

func (m *appModel) setTab(t entityTab) tea.Cmd {
	m.tab = t
	m.entityList.ResetFilter()
	kind := t.kind()
	recs, ok := m.entities[kind]
	cmd := m.entityList.SetItems(recordItems(kind, recs))
	if !ok {
		return tea.Batch(cmd, loadCollection(m.client, kind, m.project.ID()))
	}
	return cmd
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewEntities
		return m, m.refreshEntityItems()
	case "tab":
		m.detailTab = (m.detailTab + 1) % 3
		return m, nil
	case "shift+tab":
		m.detailTab = (m.detailTab + 2) % 3
		return m, nil
	case "r":
		return m, tea.Batch(
			loadChildren(m.client, model.KindTask, m.project.ID(), m.detailKind, m.detail.ID()),
			loadChildren(m.client, model.KindNote, m.project.ID(), m.detailKind, m.detail.ID()),
		)
	}

	switch m.detailTab {
	case detailTabInfo:
		return m.handleInfoKey(msg)
	case detailTabTasks:
		return m.handleTasksKey(msg)
	case detailTabNotes:
		return m.handleNotesKey(msg)
	}
	return m, nil
}

func (m appModel) handleInfoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := fieldmap.Fields(m.detailKind)
	switch msg.String() {
	case "up", "k", "ctrl+p":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j", "ctrl+n":
		if m.fieldCursor < len(fields)-1 {
			m.fieldCursor++
		}
	case "s":
		if m.caps.Can(perm.ActionEditFields) {
			m.openStatusPicker(m.detailKind, m.detail)
		}
	case "enter":
		if m.fieldCursor >= len(fields) {
			return m, nil
		}
		field := fields[m.fieldCursor]
		if !m.caps.Can(perm.ActionEditFields) {
			return m, m.setNotice("read-only access", true)
		}
		if field == "status" {
			m.openStatusPicker(m.detailKind, m.detail)
			return m, nil
		}
		if !fieldmap.Editable(m.detailKind, field) {
			return m, m.setNotice(field+" is read-only", false)
		}
		return m, m.beginEdit(field)
	}
	return m, nil
}

// beginEdit opens the inline editor on a field. An edit already open on
// another field is committed implicitly, matching blur-to-commit behavior.
func (m *appModel) beginEdit(field string) tea.Cmd {
	implicit, hadPrev := m.edit.Begin(m.detail.ID(), field, m.detail.Str(field))
	m.editInput.SetValue(m.detail.Str(field))
	m.editInput.CursorEnd()
	m.editInput.Focus()

	if hadPrev {
		return m.dispatchEdit(implicit)
	}
	return textinput.Blink
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.edit.Cancel()
		m.editInput.Blur()
		return m, nil
	case "enter":
		e, ok := m.edit.Commit()
		if !ok {
			return m, nil
		}
		m.editInput.Blur()
		return m, m.dispatchEdit(e)
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.edit.SetDraft(m.editInput.Value())
	return m, cmd
}

// dispatchEdit stages the optimistic write on the loop and hands the remote
// half to a command. A rejected precondition never reaches the network.
func (m *appModel) dispatchEdit(e mutate.Edit) tea.Cmd {
	commit, rollback, err := m.ctl.StageFieldUpdate(m.detailKind, m.detail, e.Field, e.Value)
	if err != nil {
		m.edit.Resolve()
		if mutate.IsPreconditionError(err) {
			return m.setNotice(err.Error(), false)
		}
		return m.setNotice(err.Error(), true)
	}
	return commitFieldUpdate(m.detailKind, e.EntityID, e.Field, commit, rollback)
}

func (m appModel) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "ctrl+p":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j", "ctrl+n":
		if m.taskCursor < len(m.tasks)-1 {
			m.taskCursor++
		}
	case "s", " ":
		if m.taskCursor < len(m.tasks) && m.caps.Can(perm.ActionEditFields) {
			m.openStatusPicker(model.KindTask, m.tasks[m.taskCursor])
		}
	case "n":
		if !m.caps.Can(perm.ActionEditFields) {
			return m, m.setNotice("read-only access", true)
		}
		m.openCreateModal(model.KindTask)
	}
	return m, nil
}

func (m appModel) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "ctrl+p":
		if m.noteCursor > 0 {
			m.noteCursor--
		}
	case "down", "j", "ctrl+n":
		if m.noteCursor < len(m.notes)-1 {
			m.noteCursor++
		}
	case "n":
		if !m.caps.Can(perm.ActionEditFields) {
			return m, m.setNotice("read-only access", true)
		}
		m.openNoteModal()
	case "x":
		if m.noteCursor >= len(m.notes) {
			return m, nil
		}
		if !m.caps.Can(perm.ActionDeleteNotes) {
			return m, m.setNotice("your permission level cannot delete notes", true)
		}
		m.modal = modalConfirmDelete
		m.confirmKind = model.KindNote
		m.confirmID = m.notes[m.noteCursor].ID()
		m.confirmYes = false
	}
	return m, nil
}

// refreshEntityItems rebuilds the workspace list rows after in-place record
// mutations, since row titles are computed at item construction.
func (m *appModel) refreshEntityItems() tea.Cmd {
	if m.view != viewEntities {
		return nil
	}
	kind := m.tab.kind()
	return m.entityList.SetItems(recordItems(kind, m.entities[kind]))
}

func (m *appModel) reloadAfterCreate(kind model.Kind) tea.Cmd {
	switch kind {
	case model.KindProject:
		m.loading = true
		return loadProjects(m.client)
	case model.KindTask, model.KindNote:
		return loadChildren(m.client, kind, m.project.ID(), m.detailKind, m.detail.ID())
	default:
		return loadCollection(m.client, kind, m.project.ID())
	}
}
