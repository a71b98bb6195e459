package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/liorgem/diamondlab-backend/api/routes"
	"github.com/liorgem/diamondlab-backend/internal/carats"
	"github.com/liorgem/diamondlab-backend/internal/catalog"
	"github.com/liorgem/diamondlab-backend/internal/pricing"
	"github.com/liorgem/diamondlab-backend/internal/products"
	"github.com/liorgem/diamondlab-backend/internal/variants"
	pkgauth "github.com/liorgem/diamondlab-backend/pkg/auth"
	"github.com/liorgem/diamondlab-backend/pkg/config"
	"github.com/liorgem/diamondlab-backend/pkg/db"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
	"github.com/liorgem/diamondlab-backend/pkg/metrics"
	"github.com/liorgem/diamondlab-backend/pkg/migrate"
	"github.com/liorgem/diamondlab-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis.URL)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	var remoteQuoter pricing.RemoteQuoter
	if q := pricing.NewHTTPQuoter(cfg.Pricing.RemoteURL, cfg.Pricing.RemoteTimeout); q != nil {
		remoteQuoter = q
	}
	resolver := pricing.NewResolver(remoteQuoter, redisClient, cfg.Pricing.CacheTTL, pricingMetrics, logg)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalogRepo, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	caratService, err := carats.NewService(carats.NewRepository(dbClient.DB()), productRepo, catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create carat link service", err)
		os.Exit(1)
	}
	variantService, err := variants.NewService(variants.NewRepository(dbClient.DB()), productRepo, variants.DefaultPalette(), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create variant service", err)
		os.Exit(1)
	}
	productService, err := products.NewService(productRepo, catalogRepo, resolver, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	tokens := pkgauth.NewTokenManager(cfg.JWT)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient, tokens, registry,
			catalogService, caratService, variantService, productService,
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			_ = server.Close()
		}
	}
}
