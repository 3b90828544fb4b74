package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"slate-cli/internal/api"
	"slate-cli/internal/model"
	"slate-cli/internal/mutate"
)

const requestTimeout = 15 * time.Second

func loadProjects(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		recs, err := client.Query(ctx, model.KindProject, api.Filter{})
		return projectsLoadedMsg{recs: recs, err: err}
	}
}

func loadCollection(client *api.Client, kind model.Kind, projectID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		recs, err := client.Query(ctx, kind, api.Filter{ProjectID: projectID})
		return collectionLoadedMsg{projectID: projectID, kind: kind, recs: recs, err: err}
	}
}

func loadChildren(client *api.Client, child model.Kind, projectID int64, parent model.Kind, parentID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		recs, err := client.Query(ctx, child, api.Filter{
			ProjectID:  projectID,
			EntityType: string(parent),
			EntityID:   parentID,
		})
		return childrenLoadedMsg{kind: child, parent: parent, parentID: parentID, recs: recs, err: err}
	}
}

// commitFieldUpdate runs the remote half of a staged field update. The
// rollback closure travels with the result so the update loop can restore the
// snapshot without the command ever touching model state.
func commitFieldUpdate(kind model.Kind, id int64, field string, commit func(context.Context) error, rollback func()) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := commit(ctx)
		return fieldUpdateDoneMsg{kind: kind, id: id, field: field, rollback: rollback, err: err}
	}
}

func createRecord(ctl *mutate.Controller, kind model.Kind, payload model.Record) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rec, err := ctl.Create(ctx, kind, payload)
		return createDoneMsg{kind: kind, rec: rec, err: err}
	}
}

func deleteRecord(ctl *mutate.Controller, kind model.Kind, id int64, list []model.Record, filter api.Filter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		recs, err := ctl.Delete(ctx, kind, id, list, filter)
		return deleteDoneMsg{kind: kind, id: id, recs: recs, err: err}
	}
}

func clearNoticeAfter(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}
