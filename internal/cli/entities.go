package cli

import (
	"fmt"

	"slate-cli/internal/api"
	"slate-cli/internal/fieldmap"
	"slate-cli/internal/model"
	"slate-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newSequencesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequences",
		Short: "Sequence commands",
	}
	cmd.AddCommand(newEntityListCmd(app, model.KindSequence))
	cmd.AddCommand(newEntityUpdateCmd(app, model.KindSequence))
	return cmd
}

func newShotsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shots",
		Short: "Shot commands",
	}
	cmd.AddCommand(newEntityListCmd(app, model.KindShot))
	cmd.AddCommand(newEntityUpdateCmd(app, model.KindShot))
	return cmd
}

func newAssetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Asset commands",
	}
	cmd.AddCommand(newEntityListCmd(app, model.KindAsset))
	cmd.AddCommand(newEntityUpdateCmd(app, model.KindAsset))
	return cmd
}

func newEntityListCmd(app *App, kind model.Kind) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss in a project", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := client.Query(cmd.Context(), kind, api.Filter{ProjectID: projectID})
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

// newEntityUpdateCmd applies one field update through the mutation
// controller, so CLI updates share the field-map gating and stash mirroring
// the TUI uses. The record passed in carries only the id: there is no local
// list to roll back in one-shot CLI mode, but precondition checks still
// short-circuit before any network call.
func newEntityUpdateCmd(app *App, kind model.Kind) *cobra.Command {
	var id int64
	var field string
	var value string

	cmd := &cobra.Command{
		Use:   "update",
		Short: fmt.Sprintf("Update one field of a %s", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, _, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec := model.Record{"id": id}
			if err := ctl.ApplyFieldUpdate(cmd.Context(), kind, rec, field, value); err != nil {
				if mutate.IsPreconditionError(err) {
					return writeErr(cmd, fmt.Errorf("%w (editable fields: %v)", err, fieldmap.EditableFields(kind)))
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Entity id")
	cmd.Flags().StringVar(&field, "field", "", "Client field name (see field map)")
	cmd.Flags().StringVar(&value, "value", "", "New value")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
