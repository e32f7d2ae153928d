package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/pantrylab/shelfmatch/internal/api/client"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

func entriesCmd() *cobra.Command {
	entriesRoot := &cobra.Command{
		Use:   "entries",
		Short: "Manage store entries",
		Long: "Manage priced packages observed at stores. Each entry records the raw\n" +
			"shelf size text and price; the server derives the comparable unit price.",
	}

	entriesRoot.AddCommand(
		entriesListCmd(),
		entriesGetCmd(),
		entriesAddCmd(),
		entriesDeleteCmd(),
		entriesClosestCmd(),
		entriesSwitchCmd(),
	)

	return entriesRoot
}

func entriesListCmd() *cobra.Command {
	var (
		productID    string
		storeName    string
		sizeCategory string
		unparseable  bool
		limit        int
		offset       int
		orderBy      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries with optional filters",
		Example: `  # All entries for a product, cheapest per unit first
  shelfctl entries list --product abc123 --order-by price_per_unit

  # Entries whose size text did not parse
  shelfctl entries list --unparseable`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListEntries(context.Background(), &apiclient.ListEntriesParams{
				ProductID:    productID,
				Store:        storeName,
				SizeCategory: sizeCategory,
				Unparseable:  unparseable,
				Limit:        limit,
				Offset:       offset,
				OrderBy:      orderBy,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Entries) == 0 {
				fmt.Println("No entries found.")
				return nil
			}

			fmt.Printf("Showing %d of %d entries\n\n", len(resp.Entries), resp.Total)
			return printEntriesTable(resp.Entries)
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "product ID filter")
	cmd.Flags().StringVar(&storeName, "store", "", "store name filter")
	cmd.Flags().
		StringVar(&sizeCategory, "size-category", "", "size category filter (volume, weight, count)")
	cmd.Flags().BoolVar(&unparseable, "unparseable", false, "only entries without derived fields")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&orderBy, "order-by", "", "sort order (price_per_unit, price, updated_at)")

	return cmd
}

func entriesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show entry details",
		Example: `  shelfctl entries get abc123`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			e, err := c.GetEntry(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(e)
			}

			return printEntryDetail(e)
		},
	}
}

func entriesAddCmd() *cobra.Command {
	var (
		productID string
		storeName string
		sizeText  string
		price     float64
		currency  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or update an entry",
		Long: "Record a priced package for a product at a store. Repeating the same\n" +
			"product, store, and size text updates the price in place.",
		Example: `  shelfctl entries add --product abc123 --store tesco --size "2 pints" --price 1.30
  shelfctl entries add --product abc123 --store aldi --size "6 x 500ml" --price 2.49`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if productID == "" || storeName == "" || sizeText == "" {
				return fmt.Errorf("--product, --store, and --size are required")
			}
			c := newClient()
			stored, err := c.UpsertEntry(context.Background(), &domain.Entry{
				ProductID: productID,
				Store:     storeName,
				SizeText:  sizeText,
				Price:     price,
				Currency:  currency,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stored)
			}
			if stored.Comparable() {
				fmt.Printf("Entry stored: %s at %s (%s)\n",
					strOrDash(stored.SizeDisplay), stored.Store, stored.ID)
			} else {
				fmt.Printf("Entry stored without derived size (unparseable: %q): %s\n",
					stored.SizeText, stored.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "product ID")
	cmd.Flags().StringVar(&storeName, "store", "", "store name")
	cmd.Flags().StringVar(&sizeText, "size", "", "size text as printed on the shelf")
	cmd.Flags().Float64Var(&price, "price", 0, "shelf price")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default GBP)")

	return cmd
}

func entriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete an entry",
		Example: `  shelfctl entries delete abc123`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.DeleteEntry(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Entry %s deleted.\n", args[0])
			return nil
		},
	}
}

func entriesClosestCmd() *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "closest <id>",
		Short: "Find size-equivalent entries at other stores",
		Example: `  shelfctl entries closest abc123
  shelfctl entries closest abc123 --tolerance 0.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			matches, err := c.ClosestEntry(context.Background(), args[0], tolerance)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(matches)
			}

			if len(matches) == 0 {
				fmt.Println("No size-equivalent entries found.")
				return nil
			}

			return printMatchesTable(matches)
		},
	}
	cmd.Flags().
		Float64Var(&tolerance, "tolerance", 0, "max fractional size difference (default 0.2)")

	return cmd
}

func entriesSwitchCmd() *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "switch <id> <store>",
		Short: "Find a substitute at another store",
		Long: "Pick the closest size-equivalent package for the entry's product at the\n" +
			"given store. Fails when no candidate falls within the tolerance.",
		Example: `  shelfctl entries switch abc123 asda
  shelfctl entries switch abc123 lidl --tolerance 0.1`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			result, err := c.SwitchStore(context.Background(), args[0], args[1], tolerance)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}

			fmt.Printf("Substitute at %s for %s (%s):\n\n",
				args[1], strOrDash(result.Target.SizeDisplay), result.Target.Store)
			return printMatchesTable([]apiclient.ClosestMatch{result.Substitute})
		},
	}
	cmd.Flags().
		Float64Var(&tolerance, "tolerance", 0, "max fractional size difference (default 0.2)")

	return cmd
}
