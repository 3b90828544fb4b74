package cli

import (
	"errors"

	"slate-cli/internal/api"
	"slate-cli/internal/model"
	"slate-cli/internal/perm"

	"github.com/spf13/cobra"
)

var errNotPermitted = errors.New("your permission level does not allow this (the backend enforces the real check)")

func newPeopleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "People commands",
	}
	cmd.AddCommand(newPeopleListCmd(app))
	cmd.AddCommand(newPeopleAddCmd(app))
	cmd.AddCommand(newPeopleRemoveCmd(app))
	return cmd
}

func newPeopleListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := client.Query(cmd.Context(), model.KindPerson, api.Filter{ProjectID: projectID})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newPeopleAddCmd(app *App) *cobra.Command {
	var projectID int64
	var name string
	var email string
	var role string
	var permission string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, _, cfg, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !perm.Parse(cfg.Permission).Can(perm.ActionManagePeople) {
				return writeErr(cmd, errNotPermitted)
			}
			rec, err := ctl.Create(cmd.Context(), model.KindPerson, model.Record{
				"project_id":  projectID,
				"person_name": name,
				"email":       email,
				"role":        role,
				"permission":  permission,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.Flags().StringVar(&name, "name", "", "Person name")
	cmd.Flags().StringVar(&email, "person-email", "", "Person email")
	cmd.Flags().StringVar(&role, "role", "", "Role (e.g. comp, anim, producer)")
	cmd.Flags().StringVar(&permission, "permission", "artist", "Permission (admin|manager|artist|viewer)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("person-email")
	return cmd
}

func newPeopleRemoveCmd(app *App) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a person from a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, client, cfg, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !perm.Parse(cfg.Permission).Can(perm.ActionManagePeople) {
				return writeErr(cmd, errNotPermitted)
			}
			if err := client.Delete(cmd.Context(), model.KindPerson, id, ctl.DeleteOpts); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Person id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newViewersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewers",
		Short: "Viewer commands",
	}

	var projectID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List viewers on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := client.Query(cmd.Context(), model.KindViewer, api.Filter{ProjectID: projectID})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}
	list.Flags().Int64Var(&projectID, "project", 0, "Project id")
	_ = list.MarkFlagRequired("project")

	var addProjectID int64
	var email string
	add := &cobra.Command{
		Use:   "add",
		Short: "Invite a read-only viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, _, cfg, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !perm.Parse(cfg.Permission).Can(perm.ActionAddViewers) {
				return writeErr(cmd, errNotPermitted)
			}
			rec, err := ctl.Create(cmd.Context(), model.KindViewer, model.Record{
				"project_id": addProjectID,
				"email":      email,
				"added_by":   cfg.Email,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}
	add.Flags().Int64Var(&addProjectID, "project", 0, "Project id")
	add.Flags().StringVar(&email, "viewer-email", "", "Viewer email")
	_ = add.MarkFlagRequired("project")
	_ = add.MarkFlagRequired("viewer-email")

	cmd.AddCommand(list)
	cmd.AddCommand(add)
	return cmd
}
