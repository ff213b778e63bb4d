package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Ostelo999925/uniket-sub002/internal/config"
	"github.com/Ostelo999925/uniket-sub002/internal/event"
	handler "github.com/Ostelo999925/uniket-sub002/internal/handler/http"
	"github.com/Ostelo999925/uniket-sub002/internal/repository/postgres"
	"github.com/Ostelo999925/uniket-sub002/internal/service"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
	"github.com/Ostelo999925/uniket-sub002/pkg/health"
	pkgkafka "github.com/Ostelo999925/uniket-sub002/pkg/kafka"
	"github.com/Ostelo999925/uniket-sub002/pkg/tracing"
)

// App wires together all dependencies and runs the marketplace service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "marketplace",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}
	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	// Initialize Redis client for the response cache. A cache outage should
	// not keep the service from starting.
	var rdb *redis.Client
	rdb, err = database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warn("redis unavailable, response cache disabled",
			slog.String("error", err.Error()),
		)
		rdb = nil
	} else {
		logger.Info("connected to Redis",
			slog.String("host", cfg.RedisHost),
			slog.Int("db", cfg.RedisDB),
		)
	}

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	pickupRepo := postgres.NewPickupPointRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	eventProducer := event.NewProducer(producer, logger)

	statsService := service.NewStatsService(vendorRepo, productRepo, orderRepo, reviewRepo, logger)
	moderationService := service.NewModerationService(
		productRepo,
		reviewRepo,
		notificationRepo,
		eventProducer,
		service.ModerationConfig{BannedWords: cfg.BannedWords},
		logger,
	)
	settingsService := service.NewSettingsService(settingsRepo, pickupRepo, eventProducer, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	// HTTP router.
	router := handler.NewRouter(
		statsService,
		moderationService,
		settingsService,
		notificationService,
		healthHandler,
		handler.RouterConfig{
			CacheClient: rdb,
			CacheTTL:    time.Duration(cfg.CacheTTLSeconds) * time.Second,
		},
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
