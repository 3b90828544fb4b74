package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"slate-cli/internal/api"
	"slate-cli/internal/model"
	"slate-cli/internal/perm"
)

type createField struct {
	key   string
	label string
}

// createFieldsFor lists the inputs of the create modal per kind, keyed by the
// backend column the create endpoint expects.
func createFieldsFor(kind model.Kind) []createField {
	switch kind {
	case model.KindProject:
		return []createField{{"project_name", "Name"}, {"description", "Description"}}
	case model.KindSequence:
		return []createField{{"sequence_name", "Name"}, {"description", "Description"}}
	case model.KindShot:
		return []createField{{"shot_name", "Name"}, {"frame_in", "Frame in"}, {"frame_out", "Frame out"}}
	case model.KindAsset:
		return []createField{{"asset_name", "Name"}, {"asset_type", "Type"}}
	case model.KindPerson:
		return []createField{{"person_name", "Name"}, {"email", "Email"}, {"role", "Role"}, {"permission", "Permission"}}
	case model.KindViewer:
		return []createField{{"email", "Email"}}
	case model.KindTask:
		return []createField{{"task_name", "Name"}, {"assignee", "Assignee"}}
	}
	return nil
}

func (m *appModel) openStatusPicker(kind model.Kind, rec model.Record) {
	defs := model.StatusDefs(kind)
	if defs == nil || rec == nil {
		return
	}
	items := make([]list.Item, 0, len(defs))
	cursor := 0
	for i, def := range defs {
		items = append(items, statusItem{def: def})
		if def.ID == rec.Str("status") {
			cursor = i
		}
	}
	l := newList(items, statusDelegate{}, 30, len(items)+1)
	l.SetFilteringEnabled(false)
	l.Select(cursor)
	m.statusList = l
	m.statusKind = kind
	m.statusRec = rec
	m.modal = modalStatusPicker
}

func (m *appModel) openCreateModal(kind model.Kind) {
	fields := createFieldsFor(kind)
	if fields == nil {
		return
	}
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.label
		in.CharLimit = 256
		if i == 0 {
			in.Focus()
		}
		inputs[i] = in
	}
	m.createKind = kind
	m.createFields = fields
	m.createInputs = inputs
	m.createFocus = 0
	m.modal = modalCreate
}

func (m *appModel) openNoteModal() {
	m.noteSubject.SetValue("")
	m.noteBody.SetValue("")
	m.noteSubject.Focus()
	m.noteBody.Blur()
	m.modal = modalNote
}

func (m *appModel) openActions(kind model.Kind, rec model.Record) {
	var acts []action
	if model.StatusDefs(kind) != nil && m.caps.Can(perm.ActionEditFields) {
		acts = append(acts, actionEditStatus)
	}
	switch kind {
	case model.KindPerson, model.KindViewer:
		if m.caps.Can(perm.ActionManagePeople) {
			acts = append(acts, actionDelete)
		}
	case model.KindNote:
		if m.caps.Can(perm.ActionDeleteNotes) {
			acts = append(acts, actionDelete)
		}
	default:
		if m.caps.Can(perm.ActionEditFields) {
			acts = append(acts, actionDelete)
		}
	}
	if len(acts) == 0 {
		return
	}
	items := make([]list.Item, len(acts))
	for i, a := range acts {
		items[i] = actionItem{act: a}
	}
	l := newList(items, actionDelegate{}, 24, len(items)+1)
	l.SetFilteringEnabled(false)
	m.actionsList = l
	m.actionsKind = kind
	m.actionsRec = rec
	m.modal = modalActions
}

func (m appModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalStatusPicker:
		return m.handleStatusPickerKey(msg)
	case modalConfirmDelete:
		return m.handleConfirmKey(msg)
	case modalCreate:
		return m.handleCreateKey(msg)
	case modalNote:
		return m.handleNoteKey(msg)
	case modalActions:
		return m.handleActionsKey(msg)
	}
	return m, nil
}

func (m appModel) handleStatusPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		it, ok := m.statusList.SelectedItem().(statusItem)
		kind, rec := m.statusKind, m.statusRec
		m.closeModal()
		if !ok {
			return m, nil
		}
		commit, rollback, err := m.ctl.StageFieldUpdate(kind, rec, "status", it.def.ID)
		if err != nil {
			return m, m.setNotice(err.Error(), true)
		}
		return m, tea.Batch(
			m.refreshEntityItems(),
			commitFieldUpdate(kind, rec.ID(), "status", commit, rollback),
		)
	}
	var cmd tea.Cmd
	m.statusList, cmd = m.statusList.Update(msg)
	return m, cmd
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "left", "right", "tab":
		m.confirmYes = !m.confirmYes
		return m, nil
	case "enter":
		kind, id, yes := m.confirmKind, m.confirmID, m.confirmYes
		m.closeModal()
		if !yes {
			return m, nil
		}
		return m, m.dispatchDelete(kind, id)
	}
	return m, nil
}

// dispatchDelete picks the list and re-fetch filter that match the record's
// owning collection.
func (m *appModel) dispatchDelete(kind model.Kind, id int64) tea.Cmd {
	switch kind {
	case model.KindNote:
		return deleteRecord(m.ctl, kind, id, m.notes, api.Filter{
			ProjectID:  m.project.ID(),
			EntityType: string(m.detailKind),
			EntityID:   m.detail.ID(),
		})
	case model.KindTask:
		return deleteRecord(m.ctl, kind, id, m.tasks, api.Filter{
			ProjectID:  m.project.ID(),
			EntityType: string(m.detailKind),
			EntityID:   m.detail.ID(),
		})
	default:
		return deleteRecord(m.ctl, kind, id, m.entities[kind], api.Filter{ProjectID: m.project.ID()})
	}
}

func (m appModel) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab", "down":
		m.focusCreateInput((m.createFocus + 1) % len(m.createInputs))
		return m, nil
	case "shift+tab", "up":
		m.focusCreateInput((m.createFocus + len(m.createInputs) - 1) % len(m.createInputs))
		return m, nil
	case "enter":
		if m.createFocus < len(m.createInputs)-1 {
			m.focusCreateInput(m.createFocus + 1)
			return m, nil
		}
		return m, m.submitCreate()
	}
	var cmd tea.Cmd
	m.createInputs[m.createFocus], cmd = m.createInputs[m.createFocus].Update(msg)
	return m, cmd
}

func (m *appModel) focusCreateInput(i int) {
	m.createInputs[m.createFocus].Blur()
	m.createFocus = i
	m.createInputs[i].Focus()
}

func (m *appModel) submitCreate() tea.Cmd {
	// Creation is not optimistic; the guard keeps a double enter from
	// submitting twice.
	if m.creating {
		return nil
	}
	m.creating = true
	payload := model.Record{}
	for i, f := range m.createFields {
		if v := strings.TrimSpace(m.createInputs[i].Value()); v != "" {
			payload[f.key] = v
		}
	}
	kind := m.createKind
	if kind != model.KindProject {
		payload["project_id"] = m.project.ID()
	}
	if model.StatusDefs(kind) != nil {
		payload["status"] = "wtg"
	}
	switch kind {
	case model.KindTask:
		payload["entity_type"] = string(m.detailKind)
		payload["entity_id"] = m.detail.ID()
	case model.KindViewer:
		payload["added_by"] = m.cfg.Email
	case model.KindPerson:
		if _, ok := payload["permission"]; !ok {
			payload["permission"] = "artist"
		}
	}
	return createRecord(m.ctl, kind, payload)
}

func (m appModel) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab":
		if m.noteSubject.Focused() {
			m.noteSubject.Blur()
			return m, m.noteBody.Focus()
		}
		m.noteBody.Blur()
		return m, m.noteSubject.Focus()
	case "ctrl+s":
		return m, m.submitNote()
	case "enter":
		if m.noteSubject.Focused() {
			m.noteSubject.Blur()
			return m, m.noteBody.Focus()
		}
	}
	var cmd tea.Cmd
	if m.noteSubject.Focused() {
		m.noteSubject, cmd = m.noteSubject.Update(msg)
	} else {
		m.noteBody, cmd = m.noteBody.Update(msg)
	}
	return m, cmd
}

func (m *appModel) submitNote() tea.Cmd {
	if m.creating {
		return nil
	}
	subject := strings.TrimSpace(m.noteSubject.Value())
	if subject == "" {
		return m.setNotice("note needs a subject", true)
	}
	m.creating = true
	return createRecord(m.ctl, model.KindNote, model.Record{
		"project_id":  m.project.ID(),
		"entity_type": string(m.detailKind),
		"entity_id":   m.detail.ID(),
		"subject":     subject,
		"body":        m.noteBody.Value(),
		"author":      m.cfg.Email,
	})
}

func (m appModel) handleActionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		it, ok := m.actionsList.SelectedItem().(actionItem)
		kind, rec := m.actionsKind, m.actionsRec
		m.closeModal()
		if !ok {
			return m, nil
		}
		switch it.act {
		case actionEditStatus:
			m.openStatusPicker(kind, rec)
		case actionDelete:
			m.modal = modalConfirmDelete
			m.confirmKind = kind
			m.confirmID = rec.ID()
			m.confirmYes = false
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.actionsList, cmd = m.actionsList.Update(msg)
	return m, cmd
}
