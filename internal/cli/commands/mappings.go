package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martrack-dev/martrack/internal/cli/client"
	"github.com/martrack-dev/martrack/internal/cli/guard"
	"github.com/martrack-dev/martrack/internal/cli/view"
)

// NewMappingsCmd creates the mappings command group
func NewMappingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Map equivalent products across marketplaces",
	}

	cmd.AddCommand(newMappingsListCmd(app))
	cmd.AddCommand(newMappingsCreateCmd(app))
	cmd.AddCommand(newMappingsDeleteCmd(app))

	return cmd
}

func newMappingsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List product mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter(dashboardPath, guard.RouteProtected); err != nil {
				return err
			}

			lt := view.NewLifetime()
			defer lt.Close()

			var mappings []client.Mapping
			var fetchErr error

			lt.Fetch(
				func() (any, error) { return app.API.Mappings(cmdContext()) },
				func(result any, err error) {
					if err != nil {
						fetchErr = err
						return
					}
					mappings = result.([]client.Mapping)
				},
			)
			lt.Wait()

			if fetchErr != nil {
				app.reportExpiry()
				return fetchErr
			}

			if len(mappings) == 0 {
				fmt.Fprintln(app.Out, "No mappings yet")
				fmt.Fprintln(app.Out, "Create one with 'martrack mappings create <product1-id> <product2-id>'")
				return nil
			}

			for _, m := range mappings {
				fmt.Fprintf(app.Out, "%s  %s <-> %s\n", m.ID, m.Product1ID, m.Product2ID)
			}
			return nil
		},
	}
}

func newMappingsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <product1-id> <product2-id>",
		Short: "Link two equivalent products",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter(dashboardPath, guard.RouteProtected); err != nil {
				return err
			}

			mapping, err := app.API.CreateMapping(cmdContext(), args[0], args[1])
			if err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ Mapping created: %s\n", mapping.ID)
			return nil
		},
	}
}

func newMappingsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <mapping-id>",
		Short: "Remove a product mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter(dashboardPath, guard.RouteProtected); err != nil {
				return err
			}

			if err := app.API.DeleteMapping(cmdContext(), args[0]); err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ Mapping %s deleted\n", args[0])
			return nil
		},
	}
}
