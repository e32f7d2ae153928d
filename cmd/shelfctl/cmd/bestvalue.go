package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func bestValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "best-value <product-id>",
		Short: "Rank a product's entries by unit price",
		Long: "Rank a product's store entries cheapest-per-unit first. Entries whose\n" +
			"size text did not parse are skipped and counted.",
		Example: `  shelfctl best-value abc123
  shelfctl best-value abc123 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			bv, err := c.BestValue(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(bv)
			}

			if len(bv.Ranked) == 0 {
				fmt.Println("No comparable entries found.")
				if bv.Skipped > 0 {
					fmt.Printf("%d entries skipped (unparseable size text).\n", bv.Skipped)
				}
				return nil
			}

			if err := printRankedTable(bv.Ranked); err != nil {
				return err
			}
			if bv.Skipped > 0 {
				fmt.Printf("\n%d entries skipped (unparseable size text).\n", bv.Skipped)
			}
			return nil
		},
	}
}
