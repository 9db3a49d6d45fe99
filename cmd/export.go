package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kotrik/roomwatch/internal/application"
)

func newExportCmd(app *app) *cobra.Command {
	var roomID int64
	var token string
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch a room and emit its scores as delimited text",
		Long:  "export runs the same fetch-and-merge pipeline as fetch, then writes the accumulated scores as csv (spreadsheet paste format), json, or toml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := loadSession(cmd, app, roomID, token)
			if err != nil {
				return err
			}

			for playlistID, playlistErr := range session.PlaylistErrors() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: playlist %d scores unavailable: %v\n", playlistID, playlistErr)
			}

			data, err := application.Encode(session.Snapshot(), application.ExportFormat(format))
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, data, 0o600); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				return nil
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().Int64Var(&roomID, "room", 0, "Multiplayer room id")
	cmd.Flags().StringVar(&token, "token", "", "osu! api v2 bearer token")
	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv, json or toml")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to file instead of stdout")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}
