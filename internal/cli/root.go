package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martrack-dev/martrack/internal/cli/commands"
	"github.com/martrack-dev/martrack/internal/config"
	"github.com/martrack-dev/martrack/internal/logger"
)

var version = "dev" // Will be set during build

// Execute runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return err
	}

	// Console logging for interactive use; LOG_LEVEL=debug surfaces
	// request diagnostics
	logger.Init(cfg.Logging.Level, "console")

	app, err := commands.NewApp(cfg, logger.GetLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	rootCmd := &cobra.Command{
		Use:   "martrack",
		Short: "Martrack - track and compare marketplace product listings",
		Long: `Martrack CLI - connect Wildberries/Ozon store credentials, browse
pulled product listings, and map equivalent products across marketplaces
to compare pricing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("martrack version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd(app))
	rootCmd.AddCommand(commands.NewRegisterCmd(app))
	rootCmd.AddCommand(commands.NewLogoutCmd(app))
	rootCmd.AddCommand(commands.NewWhoamiCmd(app))
	rootCmd.AddCommand(commands.NewStoresCmd(app))
	rootCmd.AddCommand(commands.NewProductsCmd(app))
	rootCmd.AddCommand(commands.NewMappingsCmd(app))
	rootCmd.AddCommand(commands.NewAdminCmd(app))
	rootCmd.AddCommand(commands.NewThemeCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
