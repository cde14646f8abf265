package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
	"github.com/shopd-dev/shopd/internal/cli/store"
)

// NewProductCmd creates the product command group. Browsing is public;
// writes are restricted to admins.
func NewProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage storefront products",
	}

	cmd.AddCommand(newProductLsCmd())
	cmd.AddCommand(newProductGetCmd())
	cmd.AddCommand(newProductAddCmd())
	cmd.AddCommand(newProductUpdateCmd())
	cmd.AddCommand(newProductRmCmd())

	return cmd
}

func printProduct(cmd *cobra.Command, p *store.Product) {
	cmd.Printf("ID:       %d\n", p.ID)
	cmd.Printf("Name:     %s\n", p.Name)
	cmd.Printf("Price:    %.2f\n", p.Price)
	cmd.Printf("Stock:    %d\n", p.StockQuantity)
	if p.Category.CategoryName != "" {
		cmd.Printf("Category: %s\n", p.Category.CategoryName)
	}
	if p.ImageURL != "" {
		cmd.Printf("Image:    %s\n", p.ImageURL)
	}
	if p.Description != "" {
		cmd.Printf("About:    %s\n", p.Description)
	}
}

func newProductLsCmd() *cobra.Command {
	var storeAlias string
	var query store.ListQuery

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(routes.Root, storeAlias)
			if err != nil {
				return err
			}

			products, err := app.Products.List(context.Background(), query)
			if err != nil {
				return err
			}

			if len(products) == 0 {
				cmd.Println("No products.")
				return nil
			}
			for _, p := range products {
				cmd.Printf("%-6d %-30s %10.2f  stock %d\n", p.ID, p.Name, p.Price, p.StockQuantity)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&query.CategoryID, "category", 0, "Only list products in this category ID")
	cmd.Flags().StringVar(&query.Search, "search", "", "Only list products whose name contains this text")
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "Maximum number of products to list")
	cmd.Flags().IntVar(&query.Offset, "offset", 0, "Number of products to skip")
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newProductGetCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q", args[0])
			}

			app, err := newApp(routes.Root, storeAlias)
			if err != nil {
				return err
			}

			product, err := app.Products.Get(context.Background(), id)
			if err != nil {
				return err
			}

			printProduct(cmd, product)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func productInputFlags(cmd *cobra.Command, input *store.ProductInput, imagePath *string) {
	cmd.Flags().StringVar(&input.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Product description")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Unit price")
	cmd.Flags().IntVar(&input.StockQuantity, "stock", 0, "Stock quantity")
	cmd.Flags().IntVar(&input.CategoryID, "category", 0, "Category ID")
	cmd.Flags().StringVar(imagePath, "image", "", "Path to a product image to upload")
}

func newProductAddCmd() *cobra.Command {
	var storeAlias, imagePath string
	var input store.ProductInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Name == "" {
				return fmt.Errorf("--name is required")
			}

			app, err := newApp(routes.AdminProduct, storeAlias)
			if err != nil {
				return err
			}
			if demoted, err := app.requireRole([]string{session.RoleAdmin}); err != nil {
				return err
			} else if demoted {
				return fmt.Errorf("admin role required to manage products")
			}

			product, err := app.Products.Create(context.Background(), input, imagePath)
			if err != nil {
				return err
			}

			cmd.Printf("Created product %d\n", product.ID)
			printProduct(cmd, product)
			return nil
		},
	}

	productInputFlags(cmd, &input, &imagePath)
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newProductUpdateCmd() *cobra.Command {
	var storeAlias, imagePath string
	var input store.ProductInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q", args[0])
			}

			app, err := newApp(routes.AdminProduct, storeAlias)
			if err != nil {
				return err
			}
			if demoted, err := app.requireRole([]string{session.RoleAdmin}); err != nil {
				return err
			} else if demoted {
				return fmt.Errorf("admin role required to manage products")
			}

			product, err := app.Products.Update(context.Background(), id, input, imagePath)
			if err != nil {
				return err
			}

			cmd.Printf("Updated product %d\n", product.ID)
			printProduct(cmd, product)
			return nil
		},
	}

	productInputFlags(cmd, &input, &imagePath)
	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}

func newProductRmCmd() *cobra.Command {
	var storeAlias string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q", args[0])
			}

			app, err := newApp(routes.AdminProduct, storeAlias)
			if err != nil {
				return err
			}
			if demoted, err := app.requireRole([]string{session.RoleAdmin}); err != nil {
				return err
			} else if demoted {
				return fmt.Errorf("admin role required to manage products")
			}

			if err := app.Products.Delete(context.Background(), id); err != nil {
				return err
			}

			cmd.Printf("Deleted product %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeAlias, "store", "", "Store alias from shopd.json")
	return cmd
}
