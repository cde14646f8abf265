package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
)

// NewCategoryCmd creates the category command group. Listing is public;
// writes are restricted to admins.
func NewCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage product categories",
	}

	cmd.AddCommand(newCategoryLsCmd())
	cmd.AddCommand(newCategoryAddCmd())
	cmd.AddCommand(newCategoryUpdateCmd())
	cmd.AddCommand(newCategoryRmCmd())

	return cmd
}

func newCategoryLsCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(routes.Root, storeAlias)
			if err != nil {
				return err
			}

			categories, err := app.Categories.List(context.Background())
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				cmd.Println("No categories.")
				return nil
			}
			for _, c := range categories {
				cmd.Printf("%-6d %s\n", c.CategoryID, c.CategoryName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newCategoryAddCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(routes.AdminCategory, storeAlias)
			if err != nil {
				return err
			}
			if demoted, err := app.requireRole([]string{session.RoleAdmin}); err != nil {
				return err
			} else if demoted {
				return fmt.Errorf("admin role required to manage categories")
			}

			category, err := app.Categories.Create(context.Background(), args[0])
			if err != nil {
				return err
			}

			cmd.Printf("Created category %d (%s)\n", category.CategoryID, category.CategoryName)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newCategoryUpdateCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category ID %q", args[0])
			}

			app, err := newApp(routes.AdminCategory, storeAlias)
			if err != nil {
				return err
			}
			if demoted, err := app.requireRole([]string{session.RoleAdmin}); err != nil {
				return err
			} else if demoted {
				return fmt.Errorf("admin role required to manage categories")
			}

			category, err := app.Categories.Update(context.Background(), id, args[1])
			if err != nil {
				return err
			}

			cmd.Printf("Updated category %d (%s)\n", category.CategoryID, category.CategoryName)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newCategoryRmCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category ID %q", args[0])
			}

			app, err := newApp(routes.AdminCategory, storeAlias)
			if err != nil {
				return err
			}
			if demoted, err := app.requireRole([]string{session.RoleAdmin}); err != nil {
				return err
			} else if demoted {
				return fmt.Errorf("admin role required to manage categories")
			}

			if err := app.Categories.Delete(context.Background(), id); err != nil {
				return err
			}

			cmd.Printf("Deleted category %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}
