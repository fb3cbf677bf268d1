package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martrack-dev/martrack/internal/cli/client"
	"github.com/martrack-dev/martrack/internal/cli/guard"
	"github.com/martrack-dev/martrack/internal/cli/view"
)

// NewProductsCmd creates the products command group
func NewProductsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "View pulled product listings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List products across connected stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter(dashboardPath, guard.RouteProtected); err != nil {
				return err
			}

			// The fetch is tied to the view's lifetime: a result arriving
			// after teardown is discarded, never applied.
			lt := view.NewLifetime()
			defer lt.Close()

			var products []client.Product
			var fetchErr error

			lt.Fetch(
				func() (any, error) { return app.API.Products(cmdContext()) },
				func(result any, err error) {
					if err != nil {
						fetchErr = err
						return
					}
					products = result.([]client.Product)
				},
			)
			lt.Wait()

			if fetchErr != nil {
				app.reportExpiry()
				return fetchErr
			}

			if len(products) == 0 {
				fmt.Fprintln(app.Out, "No products found")
				return nil
			}

			for _, p := range products {
				fmt.Fprintf(app.Out, "%s  %-30s  %8d  qty %d\n", p.ID, p.Name, p.Price, p.Quantity)
			}
			return nil
		},
	})

	return cmd
}
