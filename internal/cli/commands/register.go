package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martrack-dev/martrack/internal/cli/guard"
)

const registerPath = "/register"

// cmdContext is the base context for command-scoped requests. Cancellation
// comes from the 10s client deadline, not from the CLI.
func cmdContext() context.Context {
	return context.Background()
}

// NewRegisterCmd creates the register command
func NewRegisterCmd(app *App) *cobra.Command {
	var email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the martrack backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(app, email, password, confirm)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set MARTRACK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (min 8 characters, will prompt if not provided)")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "Password confirmation (will prompt if not provided)")

	return cmd
}

func runRegister(app *App, email, password, confirm string) error {
	if email == "" {
		email = os.Getenv("MARTRACK_EMAIL")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or MARTRACK_EMAIL env var)")
	}

	if err := app.enter(registerPath, guard.RoutePublic); err != nil {
		return err
	}

	var err error
	if password == "" {
		if password, err = promptPassword("Password: "); err != nil {
			return err
		}
	}
	if confirm == "" {
		if confirm, err = promptPassword("Confirm password: "); err != nil {
			return err
		}
	}

	if err := app.Session.Register(cmdContext(), email, password, confirm); err != nil {
		app.printFailure()
		return fmt.Errorf("registration failed")
	}

	state := app.Session.Snapshot()
	fmt.Fprintln(app.Out, "✓ Registration successful!")
	if state.User != nil {
		fmt.Fprintf(app.Out, "  User: %s (id %d)\n", state.User.Email, state.User.ID)
	}

	return nil
}
