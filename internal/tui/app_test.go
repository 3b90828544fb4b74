package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"slate-cli/internal/api"
	"slate-cli/internal/config"
	"slate-cli/internal/model"
	"slate-cli/internal/mutate"
	"slate-cli/internal/perm"
	"slate-cli/internal/stash"
)

type fakeBackend struct {
	updateErr error
	updates   int

	queryRecs []model.Record
	deleteErr error
	deletes   int
}

func (f *fakeBackend) Query(_ context.Context, _ model.Kind, _ api.Filter) ([]model.Record, error) {
	return f.queryRecs, nil
}

func (f *fakeBackend) UpdateField(_ context.Context, _ model.Kind, _ int64, _ string, _ any) error {
	f.updates++
	return f.updateErr
}

func (f *fakeBackend) Create(_ context.Context, _ model.Kind, _ model.Record) (model.Record, error) {
	return model.Record{"id": int64(99)}, nil
}

func (f *fakeBackend) Delete(_ context.Context, _ model.Kind, _ int64, _ api.DeleteOpts) error {
	f.deletes++
	return f.deleteErr
}

func newTestModel(t *testing.T, permission string) (appModel, *fakeBackend) {
	t.Helper()
	be := &fakeBackend{}
	m := newAppModel(api.New("http://unused.invalid", ""), stash.NewMem(), &config.Config{
		BaseURL:    "http://unused.invalid",
		Email:      "ada@example.com",
		Permission: permission,
	})
	m.ctl.Backend = be
	m.caps = perm.Parse(permission)
	m.setSize(100, 40)
	return m, be
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStatusPickerAppliesOptimistically(t *testing.T) {
	m, be := newTestModel(t, "artist")
	shot := model.Record{"id": int64(101), "name": "SH010", "status": "wtg"}
	m.view = viewEntities
	m.tab = tabShots
	m.project = model.Record{"id": int64(12)}
	m.entities[model.KindShot] = []model.Record{shot}
	m.entityList.SetItems(recordItems(model.KindShot, m.entities[model.KindShot]))

	mAny, _ := m.Update(keyRune('s'))
	m2 := mAny.(appModel)
	if m2.modal != modalStatusPicker {
		t.Fatalf("modal = %v, want status picker", m2.modal)
	}

	// Move wtg -> ip, confirm.
	mAny, _ = m2.Update(tea.KeyMsg{Type: tea.KeyDown})
	m3 := mAny.(appModel)
	mAny, cmd := m3.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m4 := mAny.(appModel)

	if m4.modal != modalNone {
		t.Fatalf("modal still open: %v", m4.modal)
	}
	// Optimistic write is visible before the remote command has run.
	if shot.Str("status") != "ip" {
		t.Fatalf("status = %q, want ip before remote resolves", shot.Str("status"))
	}
	if be.updates != 0 {
		t.Fatal("remote call happened on the event loop")
	}
	if cmd == nil {
		t.Fatal("no remote command dispatched")
	}
}

func TestStatusPickerRequiresEditPermission(t *testing.T) {
	m, _ := newTestModel(t, "viewer")
	m.view = viewEntities
	m.tab = tabShots
	m.entities[model.KindShot] = []model.Record{{"id": int64(101), "status": "wtg"}}
	m.entityList.SetItems(recordItems(model.KindShot, m.entities[model.KindShot]))

	mAny, _ := m.Update(keyRune('s'))
	if got := mAny.(appModel).modal; got != modalNone {
		t.Fatalf("viewer opened the status picker (modal %v)", got)
	}
}

func TestFailedUpdateRollsBackAndNotifies(t *testing.T) {
	m, be := newTestModel(t, "admin")
	be.updateErr = errors.New("500")

	detail := model.Record{"id": int64(7), "name": "Rock", "description": "granite"}
	m.view = viewDetail
	m.detailKind = model.KindAsset
	m.detail = detail
	m.project = model.Record{"id": int64(12)}

	// Cursor to description (asset fields: id, name, type, description, ...).
	m.fieldCursor = 3
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := mAny.(appModel)
	if m2.edit.State() != mutate.EditEditing {
		t.Fatalf("edit state = %v, want editing", m2.edit.State())
	}

	mAny, _ = m2.Update(keyRune('!'))
	m3 := mAny.(appModel)
	mAny, cmd := m3.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m4 := mAny.(appModel)
	if cmd == nil {
		t.Fatal("commit dispatched no command")
	}
	if detail.Str("description") != "granite!" {
		t.Fatalf("optimistic description = %q", detail.Str("description"))
	}
	if m4.edit.State() != mutate.EditCommitting {
		t.Fatalf("edit state = %v, want committing", m4.edit.State())
	}

	// Run the remote half; it fails and the handler restores the snapshot.
	msg := cmd()
	done, ok := msg.(fieldUpdateDoneMsg)
	if !ok {
		t.Fatalf("cmd produced %T", msg)
	}
	mAny, _ = m4.Update(done)
	m5 := mAny.(appModel)

	if detail.Str("description") != "granite" {
		t.Fatalf("description = %q, want rolled-back granite", detail.Str("description"))
	}
	if m5.edit.State() != mutate.EditIdle {
		t.Fatalf("edit state = %v, want idle", m5.edit.State())
	}
	if m5.notice == "" || !m5.noticeErr {
		t.Fatalf("no failure notice (notice=%q err=%v)", m5.notice, m5.noticeErr)
	}
}

func TestSuccessfulUpdateKeepsValueAndMirrorsStash(t *testing.T) {
	m, _ := newTestModel(t, "admin")

	detail := model.Record{"id": int64(7), "name": "Rock", "description": "granite"}
	if err := m.stash.Stash(stash.SlotSelectedAsset, detail); err != nil {
		t.Fatalf("stash: %v", err)
	}
	m.view = viewDetail
	m.detailKind = model.KindAsset
	m.detail = detail
	m.fieldCursor = 3

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := mAny.(appModel)
	mAny, _ = m2.Update(keyRune('!'))
	m3 := mAny.(appModel)
	mAny, cmd := m3.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m4 := mAny.(appModel)

	msg := cmd()
	mAny, _ = m4.Update(msg)
	m5 := mAny.(appModel)

	if detail.Str("description") != "granite!" {
		t.Fatalf("description = %q", detail.Str("description"))
	}
	if m5.edit.State() != mutate.EditIdle {
		t.Fatalf("edit state = %v", m5.edit.State())
	}
	if got := m5.stash.Unstash(stash.SlotSelectedAsset).Str("description"); got != "granite!" {
		t.Fatalf("stash description = %q, want granite!", got)
	}
}

func TestConfirmDeleteDefaultsToCancel(t *testing.T) {
	m, _ := newTestModel(t, "admin")
	m.view = viewDetail
	m.detailKind = model.KindShot
	m.detail = model.Record{"id": int64(101)}
	m.detailTab = detailTabNotes
	m.notes = []model.Record{{"id": int64(1), "subject": "plate swap"}}

	mAny, _ := m.Update(keyRune('x'))
	m2 := mAny.(appModel)
	if m2.modal != modalConfirmDelete || m2.confirmYes {
		t.Fatalf("confirm modal state: modal=%v yes=%v", m2.modal, m2.confirmYes)
	}

	// Enter on the default (Cancel) must not dispatch a delete.
	mAny, cmd := m2.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m3 := mAny.(appModel)
	if m3.modal != modalNone {
		t.Fatalf("modal = %v", m3.modal)
	}
	if cmd != nil {
		t.Fatal("cancel dispatched a command")
	}
	if len(m3.notes) != 1 {
		t.Fatal("note removed without backend ack")
	}
}

func TestConfirmedDeleteRemovesOnlyAfterAck(t *testing.T) {
	m, be := newTestModel(t, "admin")
	m.view = viewDetail
	m.detailKind = model.KindShot
	m.detail = model.Record{"id": int64(101)}
	m.project = model.Record{"id": int64(12)}
	m.detailTab = detailTabNotes
	m.notes = []model.Record{{"id": int64(1), "subject": "plate swap"}}

	mAny, _ := m.Update(keyRune('x'))
	m2 := mAny.(appModel)
	mAny, _ = m2.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m3 := mAny.(appModel)
	if !m3.confirmYes {
		t.Fatal("left arrow did not select Delete")
	}
	mAny, cmd := m3.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m4 := mAny.(appModel)
	if cmd == nil {
		t.Fatal("confirm dispatched no command")
	}
	// The note is still there until the backend acknowledges.
	if len(m4.notes) != 1 {
		t.Fatal("delete was pre-applied")
	}

	msg := cmd()
	mAny, _ = m4.Update(msg)
	m5 := mAny.(appModel)
	if be.deletes != 1 {
		t.Fatalf("deletes = %d", be.deletes)
	}
	if len(m5.notes) != 0 {
		t.Fatalf("notes after ack = %v", m5.notes)
	}
}

func TestNoteDeleteRequiresPermission(t *testing.T) {
	m, _ := newTestModel(t, "artist")
	m.view = viewDetail
	m.detailKind = model.KindShot
	m.detail = model.Record{"id": int64(101)}
	m.detailTab = detailTabNotes
	m.notes = []model.Record{{"id": int64(1)}}

	mAny, _ := m.Update(keyRune('x'))
	m2 := mAny.(appModel)
	if m2.modal != modalNone {
		t.Fatalf("artist reached the delete confirm (modal %v)", m2.modal)
	}
	if m2.notice == "" {
		t.Fatal("no notice explaining the denied action")
	}
}

type countingStash struct {
	stash.Store
	unstashes int
}

func (c *countingStash) Unstash(slot string) model.Record {
	c.unstashes++
	return c.Store.Unstash(slot)
}

func TestOpeningDetailReadsStashExactlyOnce(t *testing.T) {
	m, _ := newTestModel(t, "admin")
	cs := &countingStash{Store: stash.NewMem()}
	m.stash = cs
	m.ctl.Stash = cs

	shot := model.Record{"id": int64(101), "name": "SH010", "status": "wtg"}
	m.view = viewEntities
	m.tab = tabShots
	m.project = model.Record{"id": int64(12)}
	m.entities[model.KindShot] = []model.Record{shot}
	m.entityList.SetItems(recordItems(model.KindShot, m.entities[model.KindShot]))

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := mAny.(appModel)

	if m2.view != viewDetail || m2.detailKind != model.KindShot {
		t.Fatalf("view = %v kind = %v", m2.view, m2.detailKind)
	}
	if m2.detail.ID() != 101 {
		t.Fatalf("detail id = %d", m2.detail.ID())
	}
	if cs.unstashes != 1 {
		t.Fatalf("unstash calls = %d, want exactly 1 on mount", cs.unstashes)
	}
	// The slot was written on the way in, so a restart would land here too.
	if got := cs.Store.Unstash(stash.SlotSelectedShot); got.ID() != 101 {
		t.Fatalf("slot holds %v", got)
	}
}

func TestTabSwitchingShowsCachedCollection(t *testing.T) {
	m, _ := newTestModel(t, "admin")
	m.view = viewEntities
	m.tab = tabSequences
	m.project = model.Record{"id": int64(12)}
	m.entities[model.KindSequence] = []model.Record{{"id": int64(1), "name": "SQ01"}}
	m.entities[model.KindShot] = []model.Record{{"id": int64(101), "name": "SH010"}}
	m.entityList.SetItems(recordItems(model.KindSequence, m.entities[model.KindSequence]))

	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m2 := mAny.(appModel)
	if m2.tab != tabShots {
		t.Fatalf("tab = %v, want shots", m2.tab)
	}
	if cmd == nil {
		t.Fatal("SetItems should produce a command")
	}
	it, ok := m2.entityList.SelectedItem().(recordItem)
	if !ok || it.rec.ID() != 101 {
		t.Fatalf("selected item = %#v", m2.entityList.SelectedItem())
	}
}

func TestCreateModalBlocksDoubleSubmit(t *testing.T) {
	m, _ := newTestModel(t, "admin")
	m.view = viewEntities
	m.tab = tabPeople
	m.project = model.Record{"id": int64(12)}
	m.openCreateModal(model.KindViewer)

	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := mAny.(appModel)
	if cmd == nil {
		t.Fatal("first enter dispatched nothing")
	}
	if !m2.creating {
		t.Fatal("dispatch did not mark the create in flight")
	}

	// A second enter before the command goroutine resolves must not submit
	// again.
	mAny, cmd = m2.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m3 := mAny.(appModel)
	if cmd != nil {
		t.Fatal("second enter dispatched another create")
	}

	mAny, _ = m3.Update(createDoneMsg{kind: model.KindViewer, rec: model.Record{"id": int64(99)}})
	m4 := mAny.(appModel)
	if m4.creating {
		t.Fatal("guard not cleared after the create resolved")
	}
	if m4.modal != modalNone {
		t.Fatalf("modal = %v, want closed", m4.modal)
	}
}

func TestStaleChildrenLoadIsDropped(t *testing.T) {
	m, _ := newTestModel(t, "admin")
	m.view = viewDetail
	m.detailKind = model.KindShot
	m.detail = model.Record{"id": int64(102), "name": "SH020"}
	m.notes = []model.Record{{"id": int64(5), "subject": "current"}}

	// A slow response for the previously open shot lands after navigation.
	stale := childrenLoadedMsg{
		kind:     model.KindNote,
		parent:   model.KindShot,
		parentID: 101,
		recs:     []model.Record{{"id": int64(1), "subject": "old shot note"}},
	}
	mAny, _ := m.Update(stale)
	m2 := mAny.(appModel)
	if len(m2.notes) != 1 || m2.notes[0].ID() != 5 {
		t.Fatalf("stale response replaced notes: %v", m2.notes)
	}

	// The same payload for the shot that is open applies normally.
	fresh := stale
	fresh.parentID = 102
	mAny, _ = m2.Update(fresh)
	m3 := mAny.(appModel)
	if len(m3.notes) != 1 || m3.notes[0].ID() != 1 {
		t.Fatalf("matching response not applied: %v", m3.notes)
	}
}

func TestStaleCollectionLoadIsDropped(t *testing.T) {
	m, _ := newTestModel(t, "admin")
	m.view = viewEntities
	m.tab = tabShots
	m.project = model.Record{"id": int64(12)}
	m.entities[model.KindShot] = []model.Record{{"id": int64(201), "name": "SH200"}}

	// A slow response for the previously open project lands after switching.
	stale := collectionLoadedMsg{
		projectID: 11,
		kind:      model.KindShot,
		recs:      []model.Record{{"id": int64(101), "name": "SH010"}},
	}
	mAny, _ := m.Update(stale)
	m2 := mAny.(appModel)
	if got := m2.entities[model.KindShot]; len(got) != 1 || got[0].ID() != 201 {
		t.Fatalf("stale response replaced the collection: %v", got)
	}

	fresh := stale
	fresh.projectID = 12
	mAny, _ = m2.Update(fresh)
	m3 := mAny.(appModel)
	if got := m3.entities[model.KindShot]; len(got) != 1 || got[0].ID() != 101 {
		t.Fatalf("matching response not applied: %v", got)
	}
}

func TestEntityTabKinds(t *testing.T) {
	want := map[entityTab]model.Kind{
		tabSequences: model.KindSequence,
		tabShots:     model.KindShot,
		tabAssets:    model.KindAsset,
		tabPeople:    model.KindPerson,
	}
	for tab, kind := range want {
		if tab.kind() != kind {
			t.Fatalf("%s.kind() = %s", tab.title(), tab.kind())
		}
	}
}
