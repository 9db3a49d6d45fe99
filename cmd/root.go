package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rw",
		Short:         "roomwatch: view and export osu! multiplayer room scores",
		Long:          "rw fetches an osu! multiplayer room with a bearer token you supply, accumulates every playlist's scores into one deduplicated leaderboard, and exports the result as spreadsheet-ready text.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newFetchCmd(app),
		newExportCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
