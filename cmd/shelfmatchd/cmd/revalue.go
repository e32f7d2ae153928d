package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pantrylab/shelfmatch/internal/catalog"
	"github.com/pantrylab/shelfmatch/internal/config"
	"github.com/pantrylab/shelfmatch/internal/engine"
	"github.com/pantrylab/shelfmatch/internal/store"
	"github.com/pantrylab/shelfmatch/pkg/logger"
	"github.com/pantrylab/shelfmatch/pkg/size"
)

var revalueCmd = &cobra.Command{
	Use:   "revalue",
	Short: "Recompute derived size fields for every entry, then exit",
	RunE:  runRevalue,
}

func init() {
	rootCmd.AddCommand(revalueCmd)
}

func runRevalue(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	st, err := store.NewPostgresStoreWithPoolSize(
		ctx, cfg.Database.DSN(), cfg.Database.PoolSize,
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	locale := size.UK()
	locale.Currency = cfg.Pricing.CurrencySymbol

	cat := catalog.New(st, locale, cfg.Matching.Tolerance, log)
	eng := engine.NewEngine(st, cat, engine.WithLogger(log))

	if err := eng.RunRevalue(ctx); err != nil {
		return fmt.Errorf("revaluation: %w", err)
	}

	return nil
}
