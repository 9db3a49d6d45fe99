package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kotrik/roomwatch/internal/obslog"
)

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Interactive room viewer with live inputs",
		Long:  "watch opens a terminal UI with two inputs, room id and bearer token. Values commit after 500ms of typing silence; once the room id is a nonzero number and the token is long enough, the room loads and the leaderboard plus export block appear.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The alt screen owns the terminal; keep log lines out of it.
			obslog.InitQuiet(app.cfg.LogLevel, app.cfg.LogFile)
			app.log = obslog.L()

			p := tea.NewProgram(
				newWatchModel(app),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
