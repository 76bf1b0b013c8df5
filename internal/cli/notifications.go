package cli

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/notify"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Receive and review server notifications",
	}
	cmd.AddCommand(newNotificationsListenCmd(app), newNotificationsLogCmd(app))
	return cmd
}

func (a *App) notificationLog() *notify.Log {
	return notify.NewLog(a.store, a.cfg.NotificationLogSize)
}

func printNotification(app *App, at time.Time, n domain.Notification) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(app.out, "%s %s  %s\n", faint(at.Local().Format("02/01 15:04")), bold(n.Title), n.Body)
}

func newNotificationsListenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Stay connected and print notifications as they arrive (Ctrl+C to stop)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			relay := notify.NewRelay(app.cfg.WSURL, sess, notify.NotifierFunc(func(n domain.Notification) error {
				printNotification(app, time.Now(), n)
				return nil
			}), app.notificationLog())
			relay.OnRegistered = func() {
				fmt.Fprintln(app.out, color.GreenString("● Listening for notifications"))
			}
			return relay.Run(ctx)
		},
	}
}

func newNotificationsLogCmd(app *App) *cobra.Command {
	var clearLog bool
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the notifications received on this device, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries := app.notificationLog()
			if clearLog {
				if err := entries.Clear(ctx); err != nil {
					return fmt.Errorf("failed to clear notification log: %w", err)
				}
				fmt.Fprintln(app.out, "✅ Notification log cleared")
				return nil
			}
			return printLog(ctx, app, entries)
		},
	}
	cmd.Flags().BoolVar(&clearLog, "clear", false, "Remove every stored notification")
	return cmd
}

func printLog(ctx context.Context, app *App, entries *notify.Log) error {
	list, err := entries.Entries(ctx)
	if err != nil {
		return fmt.Errorf("failed to read notification log: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(app.out, "No notifications")
		return nil
	}
	for _, e := range list {
		printNotification(app, e.ReceivedAt, e.Notification)
	}
	return nil
}
