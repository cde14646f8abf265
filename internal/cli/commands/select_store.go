package commands

import (
	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/config"
	"github.com/shopd-dev/shopd/internal/cli/storeselect"
	"github.com/shopd-dev/shopd/internal/cli/userconfig"
)

// NewSelectStoreCmd creates the select-store command, which picks the store
// used by later commands when shopd.json lists more than one.
func NewSelectStoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-store",
		Short: "Choose which configured store to use",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectConfig, err := config.LoadFromCurrentDir()
			if err != nil {
				return err
			}

			store, err := storeselect.PromptStoreSelection(projectConfig)
			if err != nil {
				return err
			}
			if err := userconfig.SetSelectedStore(store.Alias); err != nil {
				return err
			}

			cmd.Printf("Selected store: %s (%s)\n", store.Alias, store.URL)
			return nil
		},
	}
}
