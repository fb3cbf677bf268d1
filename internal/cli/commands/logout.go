package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out locally (clears stored session tokens)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Purely local: no backend call, cannot fail
			app.Session.Logout()
			fmt.Fprintln(app.Out, "✓ Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd shows the locally known session. The user shown here comes
// from the token payload and is display-only; the backend remains the
// authority on whether the session is actually valid.
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Session.Snapshot()

			if state.Token == "" {
				fmt.Fprintln(app.Out, "Not logged in")
			} else if state.User != nil {
				fmt.Fprintf(app.Out, "Logged in as %s (id %d)\n", state.User.Email, state.User.ID)
			} else {
				fmt.Fprintln(app.Out, "Logged in (profile unavailable)")
			}

			if state.AdminToken != "" {
				fmt.Fprintln(app.Out, "Admin session active")
			}

			return nil
		},
	}
}
