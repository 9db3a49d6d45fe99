package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kotrik/roomwatch/internal/adapters/render/board"
	"github.com/kotrik/roomwatch/internal/application"
)

var errRoomIDZero = errors.New("room id must be a nonzero number")

func newFetchCmd(app *app) *cobra.Command {
	var roomID int64
	var token string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a room once and print its leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := loadSession(cmd, app, roomID, token)
			if err != nil {
				return err
			}

			snapshot := session.Snapshot()
			room, _ := session.Room()

			rendered, err := app.boardRenderer(board.Board{
				Room:           room,
				Scores:         snapshot.Scores,
				PlaylistErrors: session.PlaylistErrors(),
			}, board.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render leaderboard: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().Int64Var(&roomID, "room", 0, "Multiplayer room id")
	cmd.Flags().StringVar(&token, "token", "", "osu! api v2 bearer token")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func loadSession(cmd *cobra.Command, app *app, roomID int64, token string) (*application.Session, error) {
	if roomID == 0 {
		return nil, errRoomIDZero
	}

	session := app.newSession(roomID, token)
	err := runLoadSpinner(cmd.Context(), cmd.ErrOrStderr(), "Match resolving in progress...", session.Load)
	if err != nil {
		return nil, err
	}

	return session, nil
}
