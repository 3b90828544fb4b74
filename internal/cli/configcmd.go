package cli

import (
	"strings"

	"slate-cli/internal/config"
	"slate-cli/internal/model"
	"slate-cli/internal/stash"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Client configuration",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var url string
	var email string
	var permission string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set backend URL and identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(url) != "" {
				cfg.BaseURL = strings.TrimSpace(url)
			}
			if strings.TrimSpace(email) != "" {
				cfg.Email = strings.TrimSpace(email)
			}
			if strings.TrimSpace(permission) != "" {
				cfg.Permission = strings.TrimSpace(permission)
			}
			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}
			// Setting identity is the sign-in analog; record it in the
			// handoff stash alongside the config file.
			if stateDir, err := config.StateDir(); err == nil {
				_ = stash.NewSQLite(stateDir).Stash(stash.SlotAuthUser, model.Record{
					"email":      cfg.Email,
					"permission": cfg.Permission,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}

	cmd.Flags().StringVar(&url, "set-url", "", "Backend base URL")
	cmd.Flags().StringVar(&email, "set-email", "", "Signed-in email")
	cmd.Flags().StringVar(&permission, "set-permission", "", "Permission string (admin|manager|artist|viewer)")
	return cmd
}
