package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martrack-dev/martrack/internal/cli/tokenstore"
)

// NewThemeCmd creates the theme command. The theme preference shares the
// persisted store with the tokens but is not a credential; logout leaves
// it alone.
func NewThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the UI theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				theme, ok := app.Tokens.Get(tokenstore.SlotTheme)
				if !ok {
					theme = "light"
				}
				fmt.Fprintln(app.Out, theme)
				return nil
			}

			theme := args[0]
			if theme != "light" && theme != "dark" {
				return fmt.Errorf("theme must be 'light' or 'dark'")
			}

			if err := app.Tokens.Set(tokenstore.SlotTheme, theme); err != nil {
				return fmt.Errorf("failed to save theme: %w", err)
			}

			fmt.Fprintf(app.Out, "✓ Theme set to %s\n", theme)
			return nil
		},
	}

	return cmd
}
