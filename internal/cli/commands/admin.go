package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/martrack-dev/martrack/internal/cli/client"
	"github.com/martrack-dev/martrack/internal/cli/guard"
)

// NewAdminCmd creates the admin command group. Admin commands use the
// admin-scoped client and the admin token slot; they are independent of
// the user session.
func NewAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin panel operations",
	}

	cmd.AddCommand(newAdminLoginCmd(app))
	cmd.AddCommand(newAdminLogoutCmd(app))
	cmd.AddCommand(newAdminStatsCmd(app))
	cmd.AddCommand(newAdminUsersCmd(app))
	cmd.AddCommand(newAdminStoresCmd(app))
	cmd.AddCommand(newAdminProductsCmd(app))
	cmd.AddCommand(newAdminMappingsCmd(app))

	return cmd
}

func newAdminLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the admin credential pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = os.Getenv("MARTRACK_ADMIN_USERNAME")
			}
			if password == "" {
				password = os.Getenv("MARTRACK_ADMIN_PASSWORD")
			}

			if username == "" {
				return fmt.Errorf("username is required (use --username flag or MARTRACK_ADMIN_USERNAME env var)")
			}

			// The admin login route is never gated
			if err := app.enter(client.AdminLoginPath, guard.RouteAdminLogin); err != nil {
				return err
			}

			if password == "" {
				var err error
				password, err = promptPassword("Admin password: ")
				if err != nil {
					return err
				}
			}

			if err := app.Session.AdminLogin(cmdContext(), username, password); err != nil {
				app.printFailure()
				return fmt.Errorf("admin login failed")
			}

			fmt.Fprintln(app.Out, "✓ Admin login successful!")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username (or set MARTRACK_ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (or set MARTRACK_ADMIN_PASSWORD)")

	return cmd
}

func newAdminLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the admin session (the user session is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.AdminLogout()
			fmt.Fprintln(app.Out, "✓ Admin session cleared")
			return nil
		},
	}
}

func newAdminStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entity counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/stats", guard.RouteAdminProtected); err != nil {
				return err
			}

			stats, err := app.Admin.AdminStats(cmdContext())
			if err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "Users:    %d\n", stats.Users)
			fmt.Fprintf(app.Out, "Stores:   %d\n", stats.Stores)
			fmt.Fprintf(app.Out, "Products: %d\n", stats.Products)
			fmt.Fprintf(app.Out, "Mappings: %d\n", stats.Mappings)
			return nil
		},
	}
}

func newAdminUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/users", guard.RouteAdminProtected); err != nil {
				return err
			}

			users, err := app.Admin.AdminUsers(cmdContext())
			if err != nil {
				app.reportExpiry()
				return err
			}

			for _, u := range users {
				fmt.Fprintf(app.Out, "%d  %s\n", u.ID, u.Email)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user and everything they own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/users", guard.RouteAdminProtected); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			if err := app.Admin.AdminDeleteUser(cmdContext(), id); err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ User %d deleted\n", id)
			return nil
		},
	})

	return cmd
}

func newAdminStoresCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "Manage stores",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/stores", guard.RouteAdminProtected); err != nil {
				return err
			}

			stores, err := app.Admin.AdminStores(cmdContext())
			if err != nil {
				app.reportExpiry()
				return err
			}

			for _, s := range stores {
				fmt.Fprintf(app.Out, "%s  user %d  %s\n", s.ID, s.UserID, s.Type)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <store-id>",
		Short: "Delete a store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/stores", guard.RouteAdminProtected); err != nil {
				return err
			}

			if err := app.Admin.AdminDeleteStore(cmdContext(), args[0]); err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ Store %s deleted\n", args[0])
			return nil
		},
	})

	return cmd
}

func newAdminProductsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage products",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/products", guard.RouteAdminProtected); err != nil {
				return err
			}

			products, err := app.Admin.AdminProducts(cmdContext())
			if err != nil {
				app.reportExpiry()
				return err
			}

			for _, p := range products {
				fmt.Fprintf(app.Out, "%s  %-30s  %8d\n", p.ID, p.Name, p.Price)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/products", guard.RouteAdminProtected); err != nil {
				return err
			}

			if err := app.Admin.AdminDeleteProduct(cmdContext(), args[0]); err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ Product %s deleted\n", args[0])
			return nil
		},
	})

	return cmd
}

func newAdminMappingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage mappings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/mappings", guard.RouteAdminProtected); err != nil {
				return err
			}

			mappings, err := app.Admin.AdminMappings(cmdContext())
			if err != nil {
				app.reportExpiry()
				return err
			}

			for _, m := range mappings {
				fmt.Fprintf(app.Out, "%s  user %d  %s <-> %s\n", m.ID, m.UserID, m.Product1ID, m.Product2ID)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <mapping-id>",
		Short: "Delete a mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.enter("/admin/mappings", guard.RouteAdminProtected); err != nil {
				return err
			}

			if err := app.Admin.AdminDeleteMapping(cmdContext(), args[0]); err != nil {
				app.reportExpiry()
				return err
			}

			fmt.Fprintf(app.Out, "✓ Mapping %s deleted\n", args[0])
			return nil
		},
	})

	return cmd
}
