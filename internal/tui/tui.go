// Package tui is the interactive client: projects, a per-project workspace
// with sequences/shots/assets/people tabs, and a detail view with inline
// field editing, tasks and notes. All remote effects go through the mutation
// controller so the TUI and the CLI share one set of semantics.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"slate-cli/internal/api"
	"slate-cli/internal/config"
	"slate-cli/internal/model"
	"slate-cli/internal/stash"
)

// Run starts the TUI and blocks until the user quits.
func Run(client *api.Client, st stash.Store, cfg *config.Config) error {
	applyColorProfilePreference()
	// Mirror the signed-in identity so other processes (and the next run)
	// see who was active.
	_ = st.Stash(stash.SlotCurrentUser, model.Record{
		"email":      cfg.Email,
		"permission": cfg.Permission,
	})
	p := tea.NewProgram(newAppModel(client, st, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
