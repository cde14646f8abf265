package commands

import (
	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/routes"
)

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear stored authentication state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(routes.Root, storeAlias)
			if err != nil {
				return err
			}

			// Clearing an already-empty session is fine; logout never fails.
			app.Sessions.Clear()
			app.Nav.Go(routes.Login)

			cmd.Println("Logged out.")
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}
