package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"

	"github.com/md-rashed-zaman/slothold/libs/config"
	"github.com/md-rashed-zaman/slothold/libs/grpcx"
	"github.com/md-rashed-zaman/slothold/libs/httpx"
	"github.com/md-rashed-zaman/slothold/libs/kafkax"
	otelx "github.com/md-rashed-zaman/slothold/libs/otel"
	"github.com/md-rashed-zaman/slothold/libs/runtime"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/booking"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/catalog"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/clock"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/consumer"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/grpcserver"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/handlers"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/metrics"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

func main() {
	_ = config.LoadDotEnv()
	service := config.String("SERVICE_NAME", "booking-service")
	logger := runtime.NewLogger(service)

	cfg, err := loadSettings()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		panic(err)
	}

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}
	metrics.Register()

	deps, err := openDeps(ctx, cfg, logger)
	if err != nil {
		logger.Error("dependency setup failed", "err", err)
		panic(err)
	}
	defer deps.Close()

	clk := clock.NewSystem()
	cachedCatalog := catalog.NewCached(deps.catalog, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	manager := holds.NewManager(deps.store, clk, logger,
		holds.WithHoldTTL(cfg.HoldTTL),
		holds.WithScopePolicy(cfg.ScopePolicy),
		holds.WithLocker(deps.locker),
	)
	finalizer := booking.NewFinalizer(deps.store, clk, logger,
		booking.WithScopePolicy(cfg.ScopePolicy),
		booking.WithLocker(deps.locker),
	)
	desk := booking.NewDesk(cachedCatalog, deps.store, manager, finalizer, clk)
	logger.Info("booking desk ready", "store", cfg.Store, "hold_ttl", cfg.HoldTTL.String(), "scope_policy", string(cfg.ScopePolicy))

	go holds.NewSweeper(manager, logger, holds.SweeperConfig{Interval: cfg.SweepEvery, BatchSize: cfg.SweepBatch}).Run(ctx)

	if len(cfg.KafkaBrokers) > 0 {
		writer := kafkax.NewWriter(cfg.KafkaBrokers, cfg.EventsTopic)
		defer writer.Close()
		go outbox.NewPublisher(deps.store, writer, logger, outbox.PublisherConfig{
			PollEvery: cfg.OutboxPollEvery,
			BatchSize: cfg.OutboxBatch,
		}).Run(ctx)

		if cfg.CatalogTopic != "" {
			reader := kafkax.NewReader(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.CatalogTopic)
			go consumer.New(reader, logger, consumer.CatalogInvalidation(cachedCatalog, logger)).Run(ctx)
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set; outbox events stay unpublished")
	}

	mux := runtime.NewBaseMuxWithReady(deps.readyChecks(cfg)...)
	mux.Handle("/metrics", promhttp.Handler())
	handlers.NewBookingHandler(desk, logger).Register(mux)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithCORS(httpx.CORSPolicy{AllowedOrigins: cfg.CORSOrigins, MaxAge: 10 * time.Minute}),
		httpx.OnMethods(deps.rateLimit, http.MethodPost),
		httpx.WithBodyLimit(1<<20),
		httpx.WithTimeout(cfg.RequestTimeout),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer(grpcx.ServerOptions(grpcx.UnaryServerLoggingInterceptor(logger))...)
	grpcserver.Register(grpcServer, desk, logger)

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			stop()
		}
	}()
	go func() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			logger.Error("grpc listen failed", "err", err)
			stop()
			return
		}
		logger.Info("grpc server starting", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	grpcServer.GracefulStop()
	logger.Info("servers stopped")
}

type settings struct {
	Port             string
	GRPCPort         string
	Store            string
	DatabaseURL      string
	CatalogFile      string
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration
	HoldTTL          time.Duration
	ScopePolicy      model.ScopePolicy
	SweepEvery       time.Duration
	SweepBatch       int
	RedisAddr        string
	LeaseTTL         time.Duration
	LeaseWait        time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	RateLimitWindow  time.Duration
	KafkaBrokers     []string
	KafkaGroupID     string
	EventsTopic      string
	CatalogTopic     string
	OutboxPollEvery  time.Duration
	OutboxBatch      int
	CORSOrigins      []string
	RequestTimeout   time.Duration
}

func loadSettings() (settings, error) {
	var (
		s   settings
		err error
	)
	if s.Port, err = config.Port("PORT", "8083"); err != nil {
		return s, err
	}
	if s.GRPCPort, err = config.Port("GRPC_PORT", "9083"); err != nil {
		return s, err
	}
	s.Store = config.String("STORE", "postgres")
	s.DatabaseURL = config.String("DATABASE_URL", "")
	if s.Store == "postgres" && s.DatabaseURL == "" {
		return s, errors.New("DATABASE_URL is required when STORE=postgres")
	}
	s.CatalogFile = config.String("CATALOG_FILE", "")
	if s.Store != "postgres" && s.CatalogFile == "" {
		return s, errors.New("CATALOG_FILE is required without a database")
	}
	if s.CatalogCacheSize, err = config.Int("CATALOG_CACHE_SIZE", 512); err != nil {
		return s, err
	}
	if s.CatalogCacheTTL, err = config.Duration("CATALOG_CACHE_TTL", time.Minute); err != nil {
		return s, err
	}
	if s.HoldTTL, err = config.Duration("HOLD_TTL", holds.DefaultHoldTTL); err != nil {
		return s, err
	}
	if s.ScopePolicy, err = model.ParseScopePolicy(config.String("HOLD_SCOPE_POLICY", "")); err != nil {
		return s, err
	}
	if s.SweepEvery, err = config.Duration("HOLD_SWEEP_INTERVAL", 30*time.Second); err != nil {
		return s, err
	}
	if s.SweepBatch, err = config.Int("HOLD_SWEEP_BATCH", 200); err != nil {
		return s, err
	}
	s.RedisAddr = config.String("REDIS_ADDR", "")
	if s.LeaseTTL, err = config.Duration("LEASE_TTL", 10*time.Second); err != nil {
		return s, err
	}
	if s.LeaseWait, err = config.Duration("LEASE_WAIT", 2*time.Second); err != nil {
		return s, err
	}
	s.RateLimitRPS = config.Float("RATE_LIMIT_RPS", 5)
	if s.RateLimitBurst, err = config.Int("RATE_LIMIT_BURST", 10); err != nil {
		return s, err
	}
	if s.RateLimitWindow, err = config.Duration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return s, err
	}
	s.KafkaBrokers = kafkax.SplitBrokers(config.String("KAFKA_BROKERS", ""))
	s.KafkaGroupID = config.String("KAFKA_GROUP_ID", "booking-service")
	s.EventsTopic = config.String("KAFKA_EVENTS_TOPIC", "booking.events.v1")
	s.CatalogTopic = config.String("KAFKA_CATALOG_TOPIC", "catalog.changed.v1")
	if s.OutboxPollEvery, err = config.Duration("OUTBOX_POLL_INTERVAL", 2*time.Second); err != nil {
		return s, err
	}
	if s.OutboxBatch, err = config.Int("OUTBOX_BATCH_SIZE", 50); err != nil {
		return s, err
	}
	s.CORSOrigins = config.CSV("CORS_ALLOWED_ORIGINS", "")
	if s.RequestTimeout, err = config.Duration("HTTP_REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return s, err
	}
	return s, nil
}
