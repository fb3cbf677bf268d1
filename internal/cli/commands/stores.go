package commands

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/martrack-dev/martrack/internal/cli/guard"
)

const dashboardPath = "/dashboard"

// storeTypeLabels maps marketplace identifiers to display names
var storeTypeLabels = map[string]string{
	"wb":   "Wildberries",
	"ozon": "Ozon",
}

// NewStoresCmd creates the stores command group
func NewStoresCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "Manage connected marketplace stores",
	}

	cmd.AddCommand(newStoresListCmd(app))
	cmd.AddCommand(newStoresAddCmd(app))
	cmd.AddCommand(newStoresDeleteCmd(app))

	return cmd
}

func newStoresListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter(dashboardPath, guard.RouteProtected); err != nil {
				return err
			}

			stores, err := app.API.Stores(cmdContext())
			if err != nil {
				app.reportExpiry()
				return err
			}

			if len(stores) == 0 {
				fmt.Fprintln(app.Out, "No stores connected")
				fmt.Fprintln(app.Out, "Connect one with 'martrack stores add'")
				return nil
			}

			for _, store := range stores {
				label := storeTypeLabels[store.Type]
				if label == "" {
					label = store.Type
				}
				fmt.Fprintf(app.Out, "%s  %-12s  connected %s\n",
					store.ID, label, store.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newStoresAddCmd(app *App) *cobra.Command {
	var storeType, apiToken string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Connect a marketplace store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter(dashboardPath, guard.RouteProtected); err != nil {
				return err
			}

			if storeType == "" {
				prompt := promptui.Select{
					Label: "Marketplace",
					Items: []string{"Wildberries (wb)", "Ozon (ozon)"},
				}
				idx, _, err := prompt.Run()
				if err != nil {
					return fmt.Errorf("store type is required (use --type wb|ozon)")
				}
				storeType = []string{"wb", "ozon"}[idx]
			}

			if apiToken == "" {
				var err error
				apiToken, err = promptPassword("Marketplace API token: ")
				if err != nil {
					return fmt.Errorf("api token is required (use --api-token)")
				}
			}
			if apiToken == "" {
				return fmt.Errorf("api token is required (use --api-token)")
			}

			store, err := app.API.AddStore(cmdContext(), storeType, apiToken)
			if err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ Store connected: %s (%s)\n", store.ID, store.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeType, "type", "", "Marketplace type: wb or ozon")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "Marketplace API token")

	return cmd
}

func newStoresDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <store-id>",
		Short: "Disconnect a store and drop its products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter(dashboardPath, guard.RouteProtected); err != nil {
				return err
			}

			if err := app.API.DeleteStore(cmdContext(), args[0]); err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ Store %s deleted\n", args[0])
			return nil
		},
	}
}
