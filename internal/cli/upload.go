package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newUploadCmd(app *App) *cobra.Command {
	var entityRef string
	var typ string
	var path string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a file (e.g. thumbnail) for a shot or asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseEntityRef(entityRef)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := os.Open(path)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()

			url, err := client.Upload(cmd.Context(), kind, id, typ, filepath.Base(path), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"fileUrl": url})
		},
	}

	cmd.Flags().StringVar(&entityRef, "entity", "", "Target entity (kind:id)")
	cmd.Flags().StringVar(&typ, "type", "thumbnail", "Upload type discriminator")
	cmd.Flags().StringVar(&path, "file", "", "Path to the file to upload")
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
