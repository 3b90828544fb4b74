package cli

import (
	"fmt"
	"os"
	"strings"

	"slate-cli/internal/api"
	"slate-cli/internal/config"
	"slate-cli/internal/format"
	"slate-cli/internal/mutate"
	"slate-cli/internal/stash"
	"slate-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL    string
	Email      string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "slate",
		Short:        "Slate production tracker CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  slate

  # Scriptable commands
  slate shots list --project 12
  slate shots update --id 101 --field status --value ip
  slate notes add --project 12 --entity shot:101 --subject "plate swap" --body "new plate v3"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "url", envOr("SLATE_URL", ""), "Backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Email, "email", envOr("SLATE_EMAIL", ""), "Signed-in email (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SLATE_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newSequencesCmd(app))
	cmd.AddCommand(newShotsCmd(app))
	cmd.AddCommand(newAssetsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newPeopleCmd(app))
	cmd.AddCommand(newViewersCmd(app))
	cmd.AddCommand(newUploadCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, st, cfg, err := connect(app)
	if err != nil {
		return err
	}
	return tui.Run(client, st, cfg)
}

// connect resolves config + flags into the API client and the handoff stash.
func connect(app *App) (*api.Client, stash.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if app.BaseURL != "" {
		cfg.BaseURL = app.BaseURL
	}
	if app.Email != "" {
		cfg.Email = app.Email
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, nil, nil, api.ErrNoBaseURL
	}

	stateDir, err := config.StateDir()
	if err != nil {
		return nil, nil, nil, err
	}

	client := api.New(cfg.BaseURL, cfg.Email)
	return client, stash.NewSQLite(stateDir), cfg, nil
}

func newController(app *App) (*mutate.Controller, *api.Client, *config.Config, error) {
	client, st, cfg, err := connect(app)
	if err != nil {
		return nil, nil, nil, err
	}
	ctl := &mutate.Controller{
		Backend: client,
		Stash:   st,
		DeleteOpts: api.DeleteOpts{
			ActorEmail: cfg.Email,
			Permission: cfg.Permission,
		},
	}
	return ctl, client, cfg, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
