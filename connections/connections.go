// Package connections opens the data stores controllers depend on and
// exposes their readiness probes, together with checks for the upstream HTTP
// services named in the configuration. Clients are created concurrently; none of
// the drivers dial eagerly, so connectivity is proven by the probes, which
// the assembler runs before registering routes.
package connections

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/drblury/routeweaver/probe"
)

// Config lists the stores to open. An empty URL leaves that store closed.
type Config struct {
	MongoURI       string        `yaml:"mongoURI" env:"MONGO_URI"`
	MongoDatabase  string        `yaml:"mongoDatabase" env:"MONGO_DATABASE"`
	PostgresURL    string        `yaml:"postgresURL" env:"POSTGRES_URL"`
	RedisURL       string        `yaml:"redisURL" env:"REDIS_URL"`
	ConnectTimeout time.Duration `yaml:"connectTimeout" env:"CONNECT_TIMEOUT"`
	// Upstreams are HTTP services that must answer before routes are
	// registered, e.g. ROUTEWEAVER_UPSTREAM_0_URL.
	Upstreams []probe.HTTPCheck `yaml:"upstreams" envPrefix:"UPSTREAM_"`
}

// Enabled reports whether any store or upstream is configured.
func (c Config) Enabled() bool {
	return c.MongoURI != "" || c.PostgresURL != "" || c.RedisURL != "" || len(c.Upstreams) > 0
}

// Option configures Open.
type Option func(*Manager)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.log = logger
		}
	}
}

// WithHTTPClient sets the client upstream checks use. Nil keeps
// http.DefaultClient.
func WithHTTPClient(client probe.HTTPDoer) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

// Manager owns the opened clients. Fields are nil for stores that are not
// configured.
type Manager struct {
	Mongo    *mongo.Client
	Postgres *pgxpool.Pool
	Redis    *redis.Client

	database  string
	upstreams []probe.HTTPCheck
	client    probe.HTTPDoer
	log       *slog.Logger
}

// Open creates a client for every configured store. On failure the clients
// already created are closed again.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		database:  cfg.MongoDatabase,
		upstreams: slices.Clone(cfg.Upstreams),
		client:    http.DefaultClient,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MongoURI != "" {
		g.Go(func() error {
			client, err := mongo.Connect(gctx, options.Client().ApplyURI(cfg.MongoURI))
			if err != nil {
				return fmt.Errorf("mongo: %w", err)
			}
			m.Mongo = client
			return nil
		})
	}
	if cfg.PostgresURL != "" {
		g.Go(func() error {
			pool, err := pgxpool.New(gctx, cfg.PostgresURL)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			m.Postgres = pool
			return nil
		})
	}
	if cfg.RedisURL != "" {
		g.Go(func() error {
			opt, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			m.Redis = redis.NewClient(opt)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		closeErr := m.Close(context.WithoutCancel(ctx))
		return nil, errors.Join(fmt.Errorf("connections: %w", err), closeErr)
	}

	m.log.Debug("connections opened",
		"mongo", m.Mongo != nil,
		"postgres", m.Postgres != nil,
		"redis", m.Redis != nil,
		"upstreams", len(m.upstreams),
	)
	return m, nil
}

// Database returns the configured Mongo database, or nil without Mongo.
func (m *Manager) Database() *mongo.Database {
	if m == nil || m.Mongo == nil || m.database == "" {
		return nil
	}
	return m.Mongo.Database(m.database)
}

// Probes returns one readiness check per opened store followed by one per
// upstream.
func (m *Manager) Probes() []probe.Func {
	if m == nil {
		return nil
	}

	var checks []probe.Func
	if m.Mongo != nil {
		checks = append(checks, probe.NewMongoPingProbe(m.Mongo, nil))
	}
	if m.Postgres != nil {
		checks = append(checks, probe.NewPingProbe("postgres", m.Postgres.Ping))
	}
	if m.Redis != nil {
		checks = append(checks, probe.NewRedisPingProbe(m.Redis))
	}
	for _, upstream := range m.upstreams {
		checks = append(checks, upstream.Probe(m.client))
	}
	return checks
}

// Close releases every opened client and joins their errors.
func (m *Manager) Close(ctx context.Context) error {
	if m == nil {
		return nil
	}

	var errs []error
	if m.Mongo != nil {
		if err := m.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo: %w", err))
		}
		m.Mongo = nil
	}
	if m.Postgres != nil {
		m.Postgres.Close()
		m.Postgres = nil
	}
	if m.Redis != nil {
		if err := m.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
		m.Redis = nil
	}
	return errors.Join(errs...)
}
