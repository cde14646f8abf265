package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/commands"
	"github.com/shopd-dev/shopd/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "shopd",
	Short: "Shopd - Storefront management from the terminal",
	Long: `Shopd CLI - Browse and administer a shopd storefront.

Point it at a storefront API via shopd.json, log in, and manage
categories, products, and your cart without leaving the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := os.Getenv("SHOPD_LOG_LEVEL")
		if logLevel == "" {
			logLevel = "warn"
		}
		logger.Init(logLevel, "console")
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shopd version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewCategoryCmd())
	rootCmd.AddCommand(commands.NewProductCmd())
	rootCmd.AddCommand(commands.NewCartCmd())
	rootCmd.AddCommand(commands.NewSelectStoreCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
