package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func sizesCmd() *cobra.Command {
	sizesRoot := &cobra.Command{
		Use:   "sizes",
		Short: "Work with package sizes",
		Long: "Parse free-form package size text, compute unit prices, and compare\n" +
			"sizes without touching the catalog.",
	}

	sizesRoot.AddCommand(
		sizesParseCmd(),
		sizesPPUCmd(),
		sizesMatchCmd(),
		sizesEquivalentCmd(),
		sizesRankCmd(),
		sizesGroupCmd(),
		sizesSuggestCmd(),
	)

	return sizesRoot
}

func sizesParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <size>",
		Short: "Parse a size string",
		Example: `  shelfctl sizes parse "2 pints"
  shelfctl sizes parse "6 x 500ml" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			p, err := c.ParseSize(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Display:\t%s\n", p.Display)
			tw.writef("Value:\t%g %s\n", p.Value, p.Unit)
			tw.writef("Category:\t%s\n", p.Category)
			tw.writef("Normalized:\t%g\n", p.Normalized)
			return tw.finish()
		},
	}
}

func sizesPPUCmd() *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "ppu <size>",
		Short: "Compute a unit price",
		Long: "Compute the comparable unit price for a priced size: per 100ml for\n" +
			"volumes, per 100g for weights, per item for counts.",
		Example: `  shelfctl sizes ppu "2 pints" --price 1.30
  shelfctl sizes ppu "6-pack" --price 3.00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			result, err := c.PricePerUnit(context.Background(), args[0], price)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}

			fmt.Println(result.Formatted)
			return nil
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "shelf price")
	cobra.CheckErr(cmd.MarkFlagRequired("price"))

	return cmd
}

func sizesMatchCmd() *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "match <target> <candidate>...",
		Short: "Find the closest size",
		Example: `  shelfctl sizes match "2 pints" "1L" "500ml" "1 litre"
  shelfctl sizes match "1kg" "800g" "1.5kg" --tolerance 0.1`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			result, err := c.MatchSizes(context.Background(), args[0], args[1:], tolerance)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}

			if len(result.AllMatches) == 0 {
				fmt.Println("No comparable candidates.")
				return nil
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("SIZE\tDIFF\tEXACT\tAUTO\n")
			for i := range result.AllMatches {
				m := &result.AllMatches[i]
				tw.writef("%s\t%.1f%%\t%v\t%v\n",
					m.Size, m.PercentDiff, m.IsExact, m.IsAutoMatchable)
			}
			return tw.finish()
		},
	}
	cmd.Flags().
		Float64Var(&tolerance, "tolerance", 0, "max fractional size difference (default 0.2)")

	return cmd
}

func sizesEquivalentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equivalent <a> <b>",
		Short: "Check whether two sizes describe the same package",
		Example: `  shelfctl sizes equivalent "1 pint" "568ml"
  shelfctl sizes equivalent "1kg" "1000g"`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			eq, err := c.SizesEquivalent(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(map[string]bool{"equivalent": eq})
			}

			if eq {
				fmt.Printf("%q and %q are equivalent.\n", args[0], args[1])
			} else {
				fmt.Printf("%q and %q are not equivalent.\n", args[0], args[1])
			}
			return nil
		},
	}
}

func sizesRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rank <size>...",
		Short:   "Sort sizes ascending by magnitude",
		Example: `  shelfctl sizes rank "2 pints" "500ml" "1L"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			sizes, err := c.RankSizes(context.Background(), args)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(sizes)
			}

			for _, s := range sizes {
				fmt.Println(s)
			}
			return nil
		},
	}
}

func sizesGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "group <size>...",
		Short:   "Group sizes by category",
		Example: `  shelfctl sizes group "2 pints" "500g" "6-pack" "1L"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			g, err := c.GroupSizes(context.Background(), args)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(g)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Volume:\t%v\n", g.Volume)
			tw.writef("Weight:\t%v\n", g.Weight)
			tw.writef("Count:\t%v\n", g.Count)
			return tw.finish()
		},
	}
}

func sizesSuggestCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "suggest <size>...",
		Short: "Suggest a standard size",
		Long: "Pick the most shelf-standard size from the candidates, preferring round\n" +
			"and common UK package sizes.",
		Example: `  shelfctl sizes suggest "970ml" "1L" "1.02L"
  shelfctl sizes suggest "500g" "1L" --category weight`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			suggestion, err := c.SuggestSize(context.Background(), args, category)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(map[string]string{"suggestion": suggestion})
			}

			fmt.Println(suggestion)
			return nil
		},
	}
	cmd.Flags().
		StringVar(&category, "category", "", "restrict to one category (volume, weight, count)")

	return cmd
}
