package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
)

// cartRoles allows any authenticated account; the cart is per-user, not
// role-gated.
var cartRoles = []string{session.RoleUser, session.RoleAdmin}

// NewCartCmd creates the cart command group. All subcommands require an
// authenticated session.
func NewCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart",
	}

	cmd.AddCommand(newCartShowCmd())
	cmd.AddCommand(newCartAddCmd())
	cmd.AddCommand(newCartUpdateCmd())
	cmd.AddCommand(newCartRmCmd())

	return cmd
}

func newCartShowCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(routes.Cart, storeAlias)
			if err != nil {
				return err
			}
			if _, err := app.requireRole(cartRoles); err != nil {
				return err
			}

			cart, err := app.Carts.Get(context.Background())
			if err != nil {
				return err
			}

			if len(cart.Items) == 0 {
				cmd.Println("Cart is empty.")
				return nil
			}

			var total float64
			for _, item := range cart.Items {
				line := item.Product.Price * float64(item.Quantity)
				total += line
				cmd.Printf("%-6d %-30s x%-4d %10.2f\n", item.ID, item.Product.Name, item.Quantity, line)
			}
			cmd.Printf("%44s %10.2f\n", "Total:", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newCartAddCmd() *cobra.Command {
	var storeAlias string
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q", args[0])
			}

			app, err := newApp(routes.Cart, storeAlias)
			if err != nil {
				return err
			}
			if _, err := app.requireRole(cartRoles); err != nil {
				return err
			}

			if err := app.Carts.Add(context.Background(), productID, quantity); err != nil {
				return err
			}

			cmd.Printf("Added product %d to cart\n", productID)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity to add")
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newCartUpdateCmd() *cobra.Command {
	var storeAlias string
	var quantity int

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid cart item ID %q", args[0])
			}

			app, err := newApp(routes.Cart, storeAlias)
			if err != nil {
				return err
			}
			if _, err := app.requireRole(cartRoles); err != nil {
				return err
			}

			item, err := app.Carts.UpdateItem(context.Background(), itemID, quantity)
			if err != nil {
				return err
			}

			cmd.Printf("Updated %s to x%d\n", item.Product.Name, item.Quantity)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "New quantity for the line")
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newCartRmCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid cart item ID %q", args[0])
			}

			app, err := newApp(routes.Cart, storeAlias)
			if err != nil {
				return err
			}
			if _, err := app.requireRole(cartRoles); err != nil {
				return err
			}

			if err := app.Carts.RemoveItem(context.Background(), itemID); err != nil {
				return err
			}

			cmd.Printf("Removed cart item %d\n", itemID)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}
