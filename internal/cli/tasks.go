package cli

import (
	"slate-cli/internal/api"
	"slate-cli/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newEntityUpdateCmd(app, model.KindTask))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var projectID int64
	var entityRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks attached to a shot or asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseEntityRef(entityRef)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := client.Query(cmd.Context(), model.KindTask, api.Filter{
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
	cmd.Flags().StringVar(&entityRef, "entity", "", "Owning entity (kind:id, e.g. shot:101)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var projectID int64
	var entityRef string
	var name string
	var assignee string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task on a shot or asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseEntityRef(entityRef)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctl, _, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := ctl.Create(cmd.Context(), model.KindTask, model.Record{
				"project_id":  projectID,
				"entity_type": string(kind),
				"entity_id":   id,
				"task_name":   name,
				"assignee":    assignee,
				"status":      "wtg",
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.Flags().StringVar(&entityRef, "entity", "", "Owning entity (kind:id)")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee name or email")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
