package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/aestheticmarket-backend/api/middleware"
	"github.com/angelmondragon/aestheticmarket-backend/api/responses"
	"github.com/angelmondragon/aestheticmarket-backend/api/routes"
	"github.com/angelmondragon/aestheticmarket-backend/internal/auth"
	"github.com/angelmondragon/aestheticmarket-backend/internal/catalog"
	"github.com/angelmondragon/aestheticmarket-backend/internal/products"
	"github.com/angelmondragon/aestheticmarket-backend/internal/sellers"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/config"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/metrics"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/migrate"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	startedAt := time.Now()
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
	responses.ExposeInternalErrors(!cfg.App.IsProd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var (
		redisClient *redis.Client
		limiter     middleware.RateLimiter
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		limiter = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, auth rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if sqlDB, err := dbClient.SQLDB(); err == nil {
		if err := metrics.RegisterDBStats(registry, sqlDB, "postgres"); err != nil {
			logg.Warn(ctx, "failed to register db stats collector")
		}
	}

	probe := products.NewSchemaProbe(dbClient.DB(), cfg.Schema.CapabilitiesTTL)
	caps, err := probe.Refresh(ctx)
	if err != nil {
		logg.Error(ctx, "failed to resolve product schema", err)
		os.Exit(1)
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"has_status":     caps.HasStatus,
		"has_sold_at":    caps.HasSoldAt,
		"has_updated_at": caps.HasUpdatedAt,
	}), "product schema resolved")
	go refreshSchemaOnHangup(ctx, probe, logg)

	sellerRepo := sellers.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		Sellers:        sellerRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	sellerService, err := sellers.NewService(sellerRepo)
	if err != nil {
		logg.Error(ctx, "failed to create seller service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.ServiceParams{
		Repo:    products.NewRepository(dbClient.DB()),
		DB:      dbClient,
		Schema:  probe,
		Metrics: metrics.NewProductMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), probe)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			DB:             dbClient,
			Limiter:        limiter,
			Sellers:        sellerRepo,
			Gatherer:       registry,
			HTTPMetrics:    metrics.NewHTTPMetrics(registry),
			StartedAt:      startedAt,
			AuthService:    authService,
			SellerService:  sellerService,
			ProductService: productService,
			CatalogService: catalogService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if err != nil {
		logg.Error(shutdownCtx, "error during shutdown", err)
		exitCode = 1
	}
	logg.Info(shutdownCtx, "api server stopped")
	os.Exit(exitCode)
}

// refreshSchemaOnHangup re-reads the product table capabilities on SIGHUP so a
// migration applied to a live database is picked up without a restart.
func refreshSchemaOnHangup(ctx context.Context, probe *products.SchemaProbe, logg *logger.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			probe.Invalidate()
			caps, err := probe.Refresh(ctx)
			if err != nil {
				logg.Error(ctx, "product schema refresh failed", err)
				continue
			}
			logg.Info(logg.WithFields(ctx, map[string]any{
				"has_status":     caps.HasStatus,
				"has_sold_at":    caps.HasSoldAt,
				"has_updated_at": caps.HasUpdatedAt,
			}), "product schema refreshed")
		}
	}
}
