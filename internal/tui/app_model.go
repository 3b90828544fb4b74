package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"slate-cli/internal/api"
	"slate-cli/internal/config"
	"slate-cli/internal/model"
	"slate-cli/internal/mutate"
	"slate-cli/internal/perm"
	"slate-cli/internal/stash"
)

type appModel struct {
	client *api.Client
	ctl    *mutate.Controller
	stash  stash.Store
	cfg    *config.Config
	caps   perm.Capabilities

	width  int
	height int

	view view

	// projects view
	projects     []model.Record
	projectsList list.Model
	project      model.Record // selected project

	// project workspace
	tab        entityTab
	entities   map[model.Kind][]model.Record
	entityList list.Model

	// detail view
	detailKind  model.Kind
	detail      model.Record
	detailTab   detailTab
	fieldCursor int
	tasks       []model.Record
	notes       []model.Record
	taskCursor  int
	noteCursor  int

	// inline edit
	edit      mutate.Session
	editInput textinput.Model

	// modal state
	modal        modalKind
	statusList   list.Model
	statusKind   model.Kind
	statusRec    model.Record
	confirmYes   bool
	confirmKind  model.Kind
	confirmID    int64
	createKind   model.Kind
	createInputs []textinput.Model
	createFields []createField
	createFocus  int
	noteSubject  textinput.Model
	noteBody     textarea.Model
	actionsList  list.Model
	actionsKind  model.Kind
	actionsRec   model.Record

	// minibuffer notice
	notice    string
	noticeErr bool
	noticeSeq int

	loading bool
	// creating marks a create dispatched but not yet resolved. Owned by the
	// event loop, unlike the controller's guard, so a second enter in the
	// window before the command goroutine runs is still blocked.
	creating bool
	err      error
}

func newAppModel(client *api.Client, st stash.Store, cfg *config.Config) appModel {
	ctl := &mutate.Controller{
		Backend: client,
		Stash:   st,
		DeleteOpts: api.DeleteOpts{
			ActorEmail: cfg.Email,
			Permission: cfg.Permission,
		},
	}

	m := appModel{
		client:   client,
		ctl:      ctl,
		stash:    st,
		cfg:      cfg,
		caps:     perm.Parse(cfg.Permission),
		view:     viewProjects,
		entities: map[model.Kind][]model.Record{},
		loading:  true,
	}
	m.projectsList = newList(nil, recordDelegate{}, 0, 0)
	m.entityList = newList(nil, recordDelegate{}, 0, 0)

	m.editInput = textinput.New()
	m.editInput.Prompt = ""
	m.editInput.CharLimit = 512

	m.noteSubject = textinput.New()
	m.noteSubject.Prompt = ""
	m.noteSubject.Placeholder = "Subject"
	m.noteBody = textarea.New()
	m.noteBody.Placeholder = "Write a note (markdown ok)…"
	m.noteBody.ShowLineNumbers = false
	return m
}

func (m appModel) Init() tea.Cmd {
	return loadProjects(m.client)
}

func (m *appModel) setSize(width, height int) {
	m.width = width
	m.height = height
	listHeight := height - chromeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	m.projectsList.SetSize(width, listHeight)
	m.entityList.SetSize(width, listHeight)
	m.noteBody.SetWidth(min(width-10, 72))
	m.noteBody.SetHeight(min(height-12, 10))
}

// chromeHeight is header + tab row + footer.
const chromeHeight = 5

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// currentRow returns the record under the cursor in the active list view.
func (m *appModel) currentRow() (model.Kind, model.Record, bool) {
	switch m.view {
	case viewProjects:
		it, ok := m.projectsList.SelectedItem().(recordItem)
		if !ok {
			return "", nil, false
		}
		return model.KindProject, it.rec, true
	case viewEntities:
		it, ok := m.entityList.SelectedItem().(recordItem)
		if !ok {
			return "", nil, false
		}
		return m.tab.kind(), it.rec, true
	}
	return "", nil, false
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.confirmYes = false
	m.createInputs = nil
	m.createFields = nil
	m.createFocus = 0
	m.noteSubject.Blur()
	m.noteBody.Blur()
}

func (m *appModel) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
	return clearNoticeAfter(m.noticeSeq)
}

// openDetail switches to the detail view for the given kind. The view is
// seeded from the handoff slot with a single read; everything after that is
// driven by messages, never by re-reading the slot.
func (m *appModel) openDetail(kind model.Kind) tea.Cmd {
	slot, ok := stash.SlotForKind(kind)
	if !ok {
		return nil
	}
	rec := m.stash.Unstash(slot)
	if rec.ID() == 0 {
		return nil
	}
	m.view = viewDetail
	m.detailKind = kind
	m.detail = rec
	m.detailTab = detailTabInfo
	m.fieldCursor = 0
	m.tasks = nil
	m.notes = nil
	m.taskCursor = 0
	m.noteCursor = 0
	return tea.Batch(
		loadChildren(m.client, model.KindTask, m.project.ID(), kind, rec.ID()),
		loadChildren(m.client, model.KindNote, m.project.ID(), kind, rec.ID()),
	)
}
