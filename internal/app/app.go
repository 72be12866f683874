package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/cgdmohamed/drznmobile-sub000/internal/auth"
	"github.com/cgdmohamed/drznmobile-sub000/internal/catalog"
	"github.com/cgdmohamed/drznmobile-sub000/internal/checkout"
	"github.com/cgdmohamed/drznmobile-sub000/internal/config"
	"github.com/cgdmohamed/drznmobile-sub000/internal/event"
	handler "github.com/cgdmohamed/drznmobile-sub000/internal/handler/http"
	redisrepo "github.com/cgdmohamed/drznmobile-sub000/internal/repository/redis"
	"github.com/cgdmohamed/drznmobile-sub000/internal/shipping"
	"github.com/cgdmohamed/drznmobile-sub000/internal/store"
	"github.com/cgdmohamed/drznmobile-sub000/internal/woocommerce"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/database"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/health"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/httpclient"
	pkgkafka "github.com/cgdmohamed/drznmobile-sub000/pkg/kafka"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/middleware"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.SampleRate = cfg.TracingSampleRate
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Redis client for cart and shipping-method snapshots.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer for cart lifecycle events.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// WooCommerce-shaped backend client, behind a circuit breaker so a
	// misbehaving store API degrades catalog and rate lookups instead of
	// stalling carts.
	baseClient := httpclient.New(httpclient.DefaultConfig())
	wooClient := httpclient.NewCircuitBreakerClient(
		baseClient,
		httpclient.DefaultCircuitBreakerConfig("woocommerce"),
		logger,
	)
	wc := woocommerce.NewClient(wooClient, cfg.CatalogBaseURL, cfg.CatalogConsumerKey, cfg.CatalogConsumerSecret)

	// Build the dependency graph.
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	repo := redisrepo.NewCartRepository(rdb, cartTTL)
	eventProducer := event.NewProducer(producer, logger)
	stores := store.NewManager(repo, eventProducer, store.NewDemoDiscountPolicy(), logger)
	resolver := shipping.NewResolver(wc, logger)
	checkouts := checkout.NewManager()

	feed := catalog.NewFeed(logger,
		catalog.NewCategoryProvider(wc, 0),
		catalog.NewRandomProvider(wc),
		catalog.NewDemoProvider(),
	)

	var tokenValidate middleware.TokenValidator
	if cfg.JWTSecret != "" {
		tokenValidate = auth.NewValidator(cfg.JWTSecret).Validate
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		if len(cfg.KafkaBrokers) == 0 {
			return fmt.Errorf("no kafka brokers configured")
		}
		conn, err := kafka.DialContext(ctx, "tcp", cfg.KafkaBrokers[0])
		if err != nil {
			return err
		}
		return conn.Close()
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterDeps{
		Stores:        stores,
		Resolver:      resolver,
		Checkouts:     checkouts,
		Feed:          feed,
		Zones:         wc,
		MinProducts:   cfg.MinFeedProducts,
		TokenValidate: tokenValidate,
		Health:        healthHandler,
		Logger:        logger,
		PprofCIDRs:    cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
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

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
