package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	catalogmemory "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/application"
	catalogports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	ordersmemory "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/adapters/memory"
	ordersobs "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/application"
	ordersports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/httpapi"
	"github.com/renanmachad/test-backend-thera-consulting/internal/platform/migrations"
	platformobservability "github.com/renanmachad/test-backend-thera-consulting/internal/platform/observability"
	platformpostgres "github.com/renanmachad/test-backend-thera-consulting/internal/platform/postgres"
)

const serviceName = "thera-store-api"

// Run boots the HTTP API with observability, repositories, and the order
// lifecycle engine wired.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectDatabase(ctx, cfg, logger)
	defer cleanupDB()

	productRepo, orderRepo, idemStore := buildRepositories(db)

	coreCatalogService := catalogapp.NewService(productRepo)
	catalogService := catalogobs.New(
		coreCatalogService,
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.domains.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.domains.catalog.application")),
	)

	coreOrderService := ordersapp.NewService(orderRepo, productRepo, ordersapp.WithIdempotencyStore(idemStore))
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.domains.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.domains.orders.application")),
	)

	router := httpapi.NewRouter(catalogService, orderService, httpapi.Options{
		APIKey: cfg.APIKey,
		Logger: logger,
	})
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("store API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("store API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}

func buildRepositories(db *gorm.DB) (catalogports.Repository, ordersports.Repository, ordersports.IdempotencyStore) {
	if db == nil {
		return catalogmemory.NewRepository(), ordersmemory.NewRepository(), ordersmemory.NewIdempotencyStore()
	}
	return catalogpostgres.NewRepository(db), orderspostgres.NewRepository(db), orderspostgres.NewIdempotencyStore(db)
}
