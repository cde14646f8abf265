package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/config"
)

// NewInitCmd creates the init command, which writes a starter shopd.json in
// the current directory.
func NewInitCmd() *cobra.Command {
	var alias, url string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a shopd.json configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(config.ConfigFileName); err == nil {
				return fmt.Errorf("%s already exists in this directory", config.ConfigFileName)
			}

			cfg := &config.Config{
				Stores: []config.Store{{Alias: alias, URL: url}},
			}
			if err := cfg.WriteToFile(config.ConfigFileName); err != nil {
				return err
			}

			cmd.Printf("Created %s\n", config.ConfigFileName)
			cmd.Printf("  %s -> %s\n", alias, url)
			cmd.Println("Edit the file to add more stores, then run 'shopd login'.")
			return nil
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "local", "Alias for the first store entry")
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080", "URL of the storefront API")

	return cmd
}
