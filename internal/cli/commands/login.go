package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/martrack-dev/martrack/internal/cli/client"
	"github.com/martrack-dev/martrack/internal/cli/guard"
)

// promptPassword reads a password from the terminal without echo
func promptPassword(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or MARTRACK_PASSWORD env var)")
	}

	fmt.Print(label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()
	return string(bytePassword), nil
}

// NewLoginCmd creates the login command
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the martrack backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(app, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set MARTRACK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set MARTRACK_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(app *App, email, password string) error {
	if email == "" {
		email = os.Getenv("MARTRACK_EMAIL")
	}
	if password == "" {
		password = os.Getenv("MARTRACK_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or MARTRACK_EMAIL env var)")
	}

	if err := app.enter(client.LoginPath, guard.RoutePublic); err != nil {
		return err
	}

	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(app.Out, "Logging in to %s...\n", app.Config.APIBaseURL)

	if err := app.Session.Login(cmdContext(), email, password); err != nil {
		app.printFailure()
		return fmt.Errorf("login failed")
	}

	state := app.Session.Snapshot()
	fmt.Fprintln(app.Out, "✓ Login successful!")
	if state.User != nil {
		fmt.Fprintf(app.Out, "  User: %s (id %d)\n", state.User.Email, state.User.ID)
	}

	return nil
}
