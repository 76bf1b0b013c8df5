package cli

import (
	"alcyxob/fitcoach/internal/session"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if email == "" {
				if email, err = prompt(app.out, app.in, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(app.out, app.in, "Senha: "); err != nil {
					return err
				}
			}

			resp, err := app.api.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("failed to sign in: %w", err)
			}
			sess, err := session.FromLogin(resp.Token, resp.User)
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			if err := app.sessions.Save(ctx, sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Fprintf(app.out, "✅ Signed in as %s (%s)\n", sess.Name, sess.UserType)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.sessions.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Fprintln(app.out, "✅ Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.sessions.Load(cmd.Context())
			if errors.Is(err, session.ErrNoSession) {
				fmt.Fprintln(app.out, "Not signed in")
				return nil
			}
			if err != nil && !errors.Is(err, session.ErrSessionExpired) {
				return err
			}

			cyan := color.New(color.FgCyan).SprintFunc()
			fmt.Fprintf(app.out, "%s: %s\n", cyan("Name"), sess.Name)
			fmt.Fprintf(app.out, "%s: %s\n", cyan("Role"), sess.UserType)
			fmt.Fprintf(app.out, "%s: %s\n", cyan("ID"), sess.UserID.Hex())
			if !sess.ExpiresAt.IsZero() {
				expires := sess.ExpiresAt.Local().Format(time.RFC1123)
				if errors.Is(err, session.ErrSessionExpired) {
					expires = color.RedString("expired " + expires)
				}
				fmt.Fprintf(app.out, "%s: %s\n", cyan("Expires"), expires)
			}
			return nil
		},
	}
}
