package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the coach command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "coach",
		Short:         "Terminal client for trainers: routines, trainings and notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open()
		},
	}
	rootCmd.SetOut(app.out)

	rootCmd.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRoutinesCmd(app),
		newRoutineCmd(app),
		newLibraryCmd(app),
		newNotificationsCmd(app),
	)
	return rootCmd
}
