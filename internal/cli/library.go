package cli

import (
	"alcyxob/fitcoach/internal/catalog"
	"alcyxob/fitcoach/internal/domain"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLibraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage your training library",
	}
	cmd.AddCommand(newLibraryImportCmd(app))
	return cmd
}

func newLibraryImportCmd(app *App) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Create library trainings from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			file, err := catalog.Parse(data)
			if err != nil {
				return err
			}

			cyan := color.New(color.FgCyan).SprintFunc()
			if dryRun {
				for _, t := range file.Trainings {
					fmt.Fprintf(app.out, "%s  %d exercises\n", cyan(t.Name), len(t.Exercises))
				}
				fmt.Fprintf(app.out, "✅ %d trainings are valid\n", len(file.Trainings))
				return nil
			}

			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			if sess.UserType != domain.RoleTrainer {
				return errors.New("only trainers can import trainings")
			}

			res, err := catalog.NewImporter(app.api, sess.UserID).Import(cmd.Context(), file)
			if res != nil {
				for _, name := range res.CreatedExercises {
					fmt.Fprintf(app.out, "+ exercise %s\n", name)
				}
				for _, t := range res.Trainings {
					fmt.Fprintf(app.out, "+ training %s  %s\n", cyan(t.Name), t.ID.Hex())
				}
			}
			if err != nil {
				return fmt.Errorf("import stopped: %w", err)
			}
			fmt.Fprintf(app.out, "✅ Imported %d trainings\n", len(res.Trainings))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only validate the file")
	return cmd
}
