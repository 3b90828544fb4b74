package cli

import (
	"slate-cli/internal/api"
	"slate-cli/internal/model"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Note commands",
	}
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesAddCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	var projectID int64
	var entityRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes attached to a shot or asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseEntityRef(entityRef)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := client.Query(cmd.Context(), model.KindNote, api.Filter{
				ProjectID:  projectID,
				EntityType: string(kind),
				EntityID:   id,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.Flags().StringVar(&entityRef, "entity", "", "Owning entity (kind:id)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}

func newNotesAddCmd(app *App) *cobra.Command {
	var projectID int64
	var entityRef string
	var subject string
	var body string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note on a shot or asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseEntityRef(entityRef)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctl, _, cfg, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := ctl.Create(cmd.Context(), model.KindNote, model.Record{
				"project_id":  projectID,
				"entity_type": string(kind),
				"entity_id":   id,
				"subject":     subject,
				"body":        body,
				"author":      cfg.Email,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.Flags().StringVar(&entityRef, "entity", "", "Owning entity (kind:id)")
	cmd.Flags().StringVar(&subject, "subject", "", "Note subject")
	cmd.Flags().StringVar(&body, "body", "", "Note body (markdown)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, client, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.Delete(cmd.Context(), model.KindNote, id, ctl.DeleteOpts); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Note id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
