package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pantrylab/shelfmatch/internal/api/handlers"
	"github.com/pantrylab/shelfmatch/internal/api/middleware"
	"github.com/pantrylab/shelfmatch/internal/catalog"
	"github.com/pantrylab/shelfmatch/internal/config"
	"github.com/pantrylab/shelfmatch/internal/engine"
	"github.com/pantrylab/shelfmatch/internal/notify"
	"github.com/pantrylab/shelfmatch/internal/store"
	"github.com/pantrylab/shelfmatch/pkg/logger"
	"github.com/pantrylab/shelfmatch/pkg/size"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.NewPostgresStoreWithPoolSize(
		ctx, cfg.Database.DSN(), cfg.Database.PoolSize,
	)
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	locale := size.UK()
	locale.Currency = cfg.Pricing.CurrencySymbol

	cat := catalog.New(st, locale, cfg.Matching.Tolerance, log)

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notify.DiscordWebhookURL != "" {
		notifier = notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL)
	}

	eng := engine.NewEngine(st, cat,
		engine.WithLogger(log),
		engine.WithNotifier(notifier),
	)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.RevalueInterval, log)
	if err != nil {
		return fmt.Errorf("building scheduler: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	if cfg.RateLimit.Enabled {
		e.Use(middleware.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	}

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("shelfmatch API", Version))
	handlers.RegisterSizeRoutes(api, handlers.NewSizesHandler(locale))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(st))
	handlers.RegisterEntryRoutes(api, handlers.NewEntriesHandler(st, cat))
	handlers.RegisterBestValueRoutes(api, handlers.NewBestValueHandler(cat))
	handlers.RegisterRevalueRoutes(api, handlers.NewRevalueHandler(eng))
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(st))

	sched.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	stopCtx := sched.Stop()
	<-stopCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
