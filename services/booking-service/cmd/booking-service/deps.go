package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/md-rashed-zaman/slothold/libs/db"
	"github.com/md-rashed-zaman/slothold/libs/httpx"
	"github.com/md-rashed-zaman/slothold/libs/kafkax"
	"github.com/md-rashed-zaman/slothold/libs/runtime"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/catalog"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/lease"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/storage"
	"github.com/md-rashed-zaman/slothold/services/booking-service/migrations"
)

// deps are the backing services picked from configuration.
type deps struct {
	pool      *db.Pool
	rdb       *redis.Client
	store     storage.Store
	catalog   catalog.Reader
	locker    holds.Locker
	rateLimit httpx.Middleware
}

func openDeps(ctx context.Context, cfg settings, logger *slog.Logger) (*deps, error) {
	d := &deps{}

	var static *catalog.Static
	if cfg.CatalogFile != "" {
		var err error
		if static, err = catalog.LoadFile(cfg.CatalogFile); err != nil {
			return nil, err
		}
	}

	switch cfg.Store {
	case "memory":
		d.store = storage.NewMemoryStore()
		d.catalog = static
		logger.Warn("using in-memory store; holds and appointments are lost on restart")
	case "postgres":
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		d.pool = pool
		if err := migrations.Apply(ctx, pool); err != nil {
			d.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		repo := storage.NewCatalogRepository(pool)
		if static != nil {
			if err := repo.Seed(ctx, static.Services()); err != nil {
				d.Close()
				return nil, fmt.Errorf("seed catalog: %w", err)
			}
			logger.Info("catalog seeded", "file", cfg.CatalogFile)
		}
		d.store = storage.NewBookingRepository(pool, db.TxOptions{})
		d.catalog = repo
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	if cfg.RedisAddr != "" {
		d.rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		d.locker = lease.NewRedis(d.rdb, lease.RedisConfig{TTL: cfg.LeaseTTL, Wait: cfg.LeaseWait})
		limit := int(cfg.RateLimitRPS * cfg.RateLimitWindow.Seconds())
		if limit < 1 {
			limit = 1
		}
		d.rateLimit = httpx.NewRedisRateLimiter(d.rdb, limit, cfg.RateLimitWindow, "slothold:ratelimit").Middleware(logger, true)
	} else {
		d.locker = lease.NewLocal()
		d.rateLimit = httpx.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware()
	}
	return d, nil
}

func (d *deps) readyChecks(cfg settings) []runtime.ReadyCheck {
	checks := []runtime.ReadyCheck{}
	if d.pool != nil {
		checks = append(checks, runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(d.pool)})
	}
	if d.rdb != nil {
		rdb := d.rdb
		checks = append(checks, runtime.ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	if len(cfg.KafkaBrokers) > 0 {
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(cfg.KafkaBrokers)})
	}
	return checks
}

func (d *deps) Close() {
	if d.rdb != nil {
		_ = d.rdb.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}
