package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func revalueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revalue",
		Short: "Trigger a catalog revaluation",
		Long: "Recompute the derived size fields and unit prices for every catalog\n" +
			"entry. Useful after parser or locale changes.",
		Example: `  shelfctl revalue`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			if err := c.TriggerRevalue(context.Background()); err != nil {
				return err
			}
			fmt.Println("Revaluation completed.")
			return nil
		},
	}
}
