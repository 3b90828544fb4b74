package tui

import (
	"slate-cli/internal/model"
)

// Messages produced by background commands. Every remote call resolves to
// exactly one of these so the update loop stays the single writer of model
// state.

type projectsLoadedMsg struct {
	recs []model.Record
	err  error
}

// collectionLoadedMsg and childrenLoadedMsg carry the owner they were
// fetched for; the handlers drop results whose owner is no longer open, so a
// slow response cannot populate a view the user has since navigated away
// from.
type collectionLoadedMsg struct {
	projectID int64
	kind      model.Kind
	recs      []model.Record
	err       error
}

type childrenLoadedMsg struct {
	kind     model.Kind // task or note
	parent   model.Kind
	parentID int64
	recs     []model.Record
	err      error
}

// fieldUpdateDoneMsg reports the outcome of a remote field write. The
// optimistic local write already happened on the update loop; on err the
// handler runs rollback (also on the loop) to restore the snapshot.
type fieldUpdateDoneMsg struct {
	kind     model.Kind
	id       int64
	field    string
	rollback func()
	err      error
}

type createDoneMsg struct {
	kind model.Kind
	rec  model.Record
	err  error
}

type deleteDoneMsg struct {
	kind model.Kind
	id   int64
	recs []model.Record
	err  error
}

type clearNoticeMsg struct{ seq int }
