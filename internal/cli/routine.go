package cli

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/workflow"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRoutinesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "routines",
		Short: "List your routines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.currentSession(cmd.Context()); err != nil {
				return err
			}
			routines, err := app.api.ListRoutines(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list routines: %w", err)
			}
			if len(routines) == 0 {
				fmt.Fprintln(app.out, "No routines yet")
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			for _, rt := range routines {
				fmt.Fprintf(app.out, "%s  %s  %s (%s, %s → %s)\n",
					rt.ID.Hex(), green(rt.Goal), rt.StudentName, rt.RoutineType,
					rt.StartDate.Format("02/01/2006"), rt.EndDate.Format("02/01/2006"))
			}
			return nil
		},
	}
}

func newRoutineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Compose a routine: show, link, create, unlink and delete trainings",
	}
	cmd.AddCommand(
		newRoutineShowCmd(app),
		newRoutineLinkCmd(app),
		newRoutineNewTrainingCmd(app),
		newRoutineUnlinkCmd(app),
		newRoutineDeleteCmd(app),
		newRoutineExercisesCmd(app),
	)
	return cmd
}

func newRoutineShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <routine>",
		Short: "Show a routine, its trainings and the library available to link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("routine", args[0])
			if err != nil {
				return err
			}
			d, _, err := app.loadDetails(cmd.Context(), id, false)
			if err != nil {
				return err
			}
			defer d.Unmount()
			printRoutine(app, d)
			return nil
		},
	}
}

func printRoutine(app *App, d *workflow.RoutineDetails) {
	st := d.Snapshot()
	rt := st.Routine
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(app.out, "\n%s\n", green(strings.ToUpper(rt.Goal)))
	fmt.Fprintf(app.out, "%s: %s\n", cyan("Student"), rt.StudentName)
	fmt.Fprintf(app.out, "%s: %s\n", cyan("Type"), rt.RoutineType)
	fmt.Fprintf(app.out, "%s: %s\n", cyan("Difficulty"), rt.Difficulty)
	fmt.Fprintf(app.out, "%s: %s → %s\n", cyan("Period"), rt.StartDate.Format("02/01/2006"), rt.EndDate.Format("02/01/2006"))
	if rt.Instructions != "" {
		fmt.Fprintf(app.out, "%s: %s\n", cyan("Instructions"), rt.Instructions)
	}
	fmt.Fprintln(app.out, strings.Repeat("=", 60))

	fmt.Fprintf(app.out, "\n%s\n", yellow("Trainings"))
	if len(st.Links) == 0 {
		fmt.Fprintln(app.out, "  (none)")
	}
	for _, l := range st.Links {
		day := ""
		if l.DayOfWeek != "" {
			day = " [" + l.DayOfWeek + "]"
		}
		fmt.Fprintf(app.out, "  %d. %s%s  %s\n", l.Order, l.TrainingName, day, faint("link "+l.ID.Hex()))
	}

	options := d.PickerOptions()
	if len(options) == 0 {
		return
	}
	fmt.Fprintf(app.out, "\n%s\n", yellow("Library"))
	for _, o := range options {
		line := fmt.Sprintf("  %s  %s", o.Training.ID.Hex(), o.Training.Name)
		if o.Disabled {
			line = faint(line + " (linked)")
		}
		fmt.Fprintln(app.out, line)
	}
}

func newRoutineLinkCmd(app *App) *cobra.Command {
	var rawSets []string
	cmd := &cobra.Command{
		Use:     "link <routine> <training>",
		Short:   "Link a library training to the routine, optionally overriding rep types and loads",
		Example: "  coach routine link 65f0... 65f1... --set 65f2...=reps-load:22,5 --set 65f3...=reps-time",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			routineID, err := parseID("routine", args[0])
			if err != nil {
				return err
			}
			trainingID, err := parseID("training", args[1])
			if err != nil {
				return err
			}
			sets := make([]setFlag, 0, len(rawSets))
			for _, raw := range rawSets {
				s, err := parseSetFlag(raw)
				if err != nil {
					return err
				}
				sets = append(sets, s)
			}

			d, _, err := app.loadDetails(ctx, routineID, false)
			if err != nil {
				return err
			}
			defer d.Unmount()

			d.OpenPicker()
			if err := d.SelectTraining(ctx, trainingID); err != nil {
				return err
			}
			if err := applySets(d, sets); err != nil {
				d.Cancel()
				return err
			}
			return d.LinkTrainingWithLoads(ctx)
		},
	}
	cmd.Flags().StringArrayVar(&rawSets, "set", nil, "Override an exercise: exerciseID=repType[:load] (repeatable)")
	return cmd
}

func newRoutineNewTrainingCmd(app *App) *cobra.Command {
	var draft workflow.Draft
	var weekday string
	cmd := &cobra.Command{
		Use:   "new-training <routine>",
		Short: "Create a library training and link it to the routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			routineID, err := parseID("routine", args[0])
			if err != nil {
				return err
			}
			d, _, err := app.loadDetails(ctx, routineID, false)
			if err != nil {
				return err
			}
			defer d.Unmount()

			draft.Weekday = domain.Weekday(weekday)
			d.OpenCreate()
			d.SetDraft(draft)
			return d.CreateAndLinkTraining(ctx)
		},
	}
	cmd.Flags().StringVar(&draft.Name, "name", "", "Training name")
	cmd.Flags().StringVar(&draft.Notes, "notes", "", "Notes shown to the student")
	cmd.Flags().StringVar(&weekday, "weekday", "", "Weekday for weekday routines (Segunda ... Domingo)")
	cmd.Flags().StringVar(&draft.Number, "number", "", "Training number for numeric routines")
	return cmd
}

func newRoutineUnlinkCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "unlink <routine> <link>",
		Short: "Remove a training from the routine; the training stays in the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			routineID, err := parseID("routine", args[0])
			if err != nil {
				return err
			}
			linkID, err := parseID("link", args[1])
			if err != nil {
				return err
			}
			d, _, err := app.loadDetails(ctx, routineID, yes)
			if err != nil {
				return err
			}
			defer d.Unmount()

			if err := d.RemoveTraining(ctx, linkID); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "✅ Training removed from routine")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newRoutineDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <routine>",
		Short: "Delete the routine and all of its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			routineID, err := parseID("routine", args[0])
			if err != nil {
				return err
			}
			d, _, err := app.loadDetails(ctx, routineID, yes)
			if err != nil {
				return err
			}
			defer d.Unmount()

			if err := d.DeleteRoutine(ctx); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "✅ Routine deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newRoutineExercisesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exercises <link>",
		Short: "Show the effective exercises of a linked training",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			linkID, err := parseID("link", args[0])
			if err != nil {
				return err
			}
			sess, err := app.currentSession(ctx)
			if err != nil {
				return err
			}

			ui := newTerminalUI(app.out, app.in, false)
			d := workflow.NewRoutineDetails(app.env(sess, ui), primitive.NilObjectID)
			rows, err := d.ResolvedExercises(ctx, linkID)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(app.out, "No exercises configured")
				return nil
			}

			cyan := color.New(color.FgCyan).SprintFunc()
			for i, r := range rows {
				fmt.Fprintf(app.out, "%d. %s\n", i+1, r.ExerciseName)
				fmt.Fprintf(app.out, "   %s: %s  %s: %d", cyan("Type"), r.RepType, cyan("Sets"), r.Sets)
				if r.Reps != "" {
					fmt.Fprintf(app.out, "  %s: %s", cyan("Reps"), r.Reps)
				}
				if r.Time != "" {
					fmt.Fprintf(app.out, "  %s: %s", cyan("Time"), r.Time)
				}
				if r.RepType.IsLoadBearing() {
					fmt.Fprintf(app.out, "  %s: %s", cyan("Load"), formatLoad(r.Load))
				}
				if r.Rest != "" {
					fmt.Fprintf(app.out, "  %s: %s", cyan("Rest"), r.Rest)
				}
				fmt.Fprintln(app.out)
			}
			return nil
		},
	}
}
