package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/pantrylab/shelfmatch/internal/api/client"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Manage products",
		Long: "Manage the product catalog. A product groups the store entries that\n" +
			"describe the same item in different package sizes.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsCreateCmd(),
		productsUpdateCmd(),
		productsDeleteCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var (
		category string
		name     string
		limit    int
		offset   int
		orderBy  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with optional filters",
		Example: `  # List all products
  shelfctl products list

  # Filter by category and name
  shelfctl products list --category dairy --name milk

  # Sort by name with pagination
  shelfctl products list --order-by name --limit 20 --offset 40`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListProducts(context.Background(), &apiclient.ListProductsParams{
				Category: category,
				Name:     name,
				Limit:    limit,
				Offset:   offset,
				OrderBy:  orderBy,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			fmt.Printf("Showing %d of %d products\n\n", len(resp.Products), resp.Total)
			return printProductsTable(resp.Products)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category filter")
	cmd.Flags().StringVar(&name, "name", "", "case-insensitive name filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "sort order (name, created_at)")

	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show product details",
		Example: `  shelfctl products get abc123`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			p, err := c.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			return printProductDetail(p)
		},
	}
}

func productsCreateCmd() *cobra.Command {
	var (
		name     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new product",
		Example: `  shelfctl products create --name "semi-skimmed milk" --category dairy
  shelfctl products create --name "cheddar"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			c := newClient()
			created, err := c.CreateProduct(context.Background(), name, category)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Product created: %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&category, "category", "", "product category")

	return cmd
}

func productsUpdateCmd() *cobra.Command {
	var (
		name     string
		category string
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a product",
		Example: `  shelfctl products update abc123 --name "whole milk"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			p, err := c.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}

			if name != "" {
				p.Name = name
			}
			if category != "" {
				p.Category = category
			}

			updated, err := c.UpdateProduct(context.Background(), p)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(updated)
			}
			fmt.Printf("Product updated: %s (%s)\n", updated.Name, updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new product name")
	cmd.Flags().StringVar(&category, "category", "", "new product category")

	return cmd
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a product and its entries",
		Example: `  shelfctl products delete abc123`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.DeleteProduct(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Product %s deleted.\n", args[0])
			return nil
		},
	}
}
