// In file: internal/app/app.go

// Package app is the shared composition root: it turns an AppConfig into the
// fully wired set of services used by both the gateway and assistantctl.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/config"
	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
	"github.com/dileep-u-k/assistant-gateway/internal/ledger"
	"github.com/dileep-u-k/assistant-gateway/internal/logger"
	"github.com/dileep-u-k/assistant-gateway/internal/nlu"
	"github.com/dileep-u-k/assistant-gateway/internal/orchestrator"
	"github.com/dileep-u-k/assistant-gateway/internal/tools"
)

const redisPingTimeout = 3 * time.Second

// Services holds every long-lived component. Registries and the classifier are
// read-only after construction and shared by all requests.
type Services struct {
	Config       *config.AppConfig
	Logger       *zap.Logger
	Catalog      *fixtures.Catalog
	Ledger       ledger.Store
	Redis        *redis.Client // nil when the ledger is in memory
	Invoker      *tools.Invoker
	Classifier   *nlu.Classifier
	Orchestrator *orchestrator.Orchestrator
}

// Option tweaks construction, mostly for tests.
type Option func(*buildOptions)

type buildOptions struct {
	domainOpts []tools.DomainOption
}

// WithDomainOptions forwards options to every domain registry.
func WithDomainOptions(opts ...tools.DomainOption) Option {
	return func(b *buildOptions) {
		b.domainOpts = append(b.domainOpts, opts...)
	}
}

// New wires the services. With REDIS_ADDR set, the Redis ledger is pinged and
// seeded with any fixture account it does not know yet.
func New(ctx context.Context, cfg *config.AppConfig, log *zap.Logger, opts ...Option) (*Services, error) {
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}
	log = logger.OrNop(log)

	catalog, err := fixtures.Load(cfg.FixturesFile)
	if err != nil {
		return nil, err
	}

	s := &Services{Config: cfg, Logger: log, Catalog: catalog}

	if cfg.UsesRedis() {
		rdb, store, err := OpenRedisLedger(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if _, err := store.Seed(ctx, catalog.Accounts, false); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("seed ledger: %w", err)
		}
		s.Redis, s.Ledger = rdb, store
		log.Info("ledger backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		s.Ledger = ledger.NewMemoryStore(catalog.Accounts)
		log.Info("ledger kept in memory")
	}

	s.Invoker, err = tools.NewInvoker(log,
		tools.NewFoodRegistry(catalog, tools.ModeFor(cfg.ZomatoMockMode), bo.domainOpts...),
		tools.NewProductRegistry(catalog, tools.ModeFor(cfg.AmazonMockMode), bo.domainOpts...),
		tools.NewBankingRegistry(catalog, s.Ledger, tools.ModeFor(cfg.BankMockMode), bo.domainOpts...),
	)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := s.Invoker.Alias("zomato", tools.DomainFood); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.Invoker.Alias("amazon", tools.DomainProduct); err != nil {
		s.Close()
		return nil, err
	}

	s.Classifier = nlu.NewClassifier(cfg.DemoAccountID)
	s.Orchestrator = orchestrator.New(s.Classifier, s.Invoker,
		orchestrator.WithToolTimeout(cfg.ToolTimeout),
		orchestrator.WithStreamInterval(cfg.StreamInterval),
		orchestrator.WithLogger(log),
	)

	log.Info("services initialized",
		zap.Strings("domains", s.Invoker.Domains()),
		zap.Bool("zomato_mock", cfg.ZomatoMockMode),
		zap.Bool("amazon_mock", cfg.AmazonMockMode),
		zap.Bool("bank_mock", cfg.BankMockMode))
	return s, nil
}

// OpenRedisLedger connects to cfg.RedisAddr and returns the client and a store
// over it. The caller owns the client.
func OpenRedisLedger(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*redis.Client, *ledger.RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("could not connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	store := ledger.NewRedisStore(rdb,
		ledger.WithKeyPrefix(cfg.LedgerKeyPrefix),
		ledger.WithLogger(log),
	)
	return rdb, store, nil
}

// Close releases the Redis connection, if any.
func (s *Services) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Warn("closing redis", zap.Error(err))
		}
	}
}
