package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	var email, password, storeAlias string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(routes.Login, storeAlias)
			if err != nil {
				return err
			}
			return runLogin(app, email, password, remember)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SHOPD_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SHOPD_PASSWORD, will prompt if not provided)")
	cmd.Flags().BoolVar(&remember, "remember", false, "Keep the session across restarts")
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")

	return cmd
}

func runLogin(app *App, email, password string, remember bool) error {
	// Environment fallbacks, useful for CI.
	if email == "" {
		email = os.Getenv("SHOPD_EMAIL")
	}
	if password == "" {
		password = os.Getenv("SHOPD_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SHOPD_EMAIL env var)")
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or SHOPD_PASSWORD env var)")
		}
	}

	fmt.Printf("Logging in to %s (%s)...\n", app.Store.Alias, app.Store.URL)

	resp, err := app.Users.Login(context.Background(), email, password)
	if err != nil {
		return err
	}

	// The stored email comes from the token's subject, not the response;
	// the role is normalized here, at its single ingestion point.
	user, err := session.BuildStoredUser(resp.Token, resp.Role, resp.FullName, resp.ID)
	if err != nil {
		return fmt.Errorf("backend issued an unreadable token: %w", err)
	}

	if err := app.Sessions.Establish(resp.Token, "", user, remember); err != nil {
		return fmt.Errorf("failed to save authentication state: %w", err)
	}

	fmt.Println("Login successful!")
	fmt.Printf("  User: %s (%s)\n", user.FullName, user.Email)

	// Land on the role's start page, same as the web client.
	if user.Role == session.RoleAdmin {
		fmt.Println("  Role: Admin")
		app.Nav.Go(routes.AdminCategory)
	} else {
		app.Nav.Go(routes.Root)
	}

	return nil
}
