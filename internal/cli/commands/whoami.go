package commands

import (
	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
)

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(routes.Root, storeAlias)
			if err != nil {
				return err
			}

			sess := app.Sessions.Current()
			if sess == nil {
				cmd.Println("Not logged in.")
				return nil
			}

			cmd.Printf("Email: %s\n", sess.Email)
			cmd.Printf("Role:  %s\n", sess.Role)

			token := app.Sessions.Token()
			if token == "" {
				cmd.Println("Token: none")
				return nil
			}

			// Display-only decode; the backend is the authority on validity.
			if claims, err := session.Decode(token); err == nil && claims.ExpiresAt != nil {
				cmd.Printf("Token: expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			}
			if session.IsExpired(token) {
				cmd.Println("Token is expired. Run 'shopd login' to re-authenticate.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}
