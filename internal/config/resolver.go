package config

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultNamespace prefixes every store key: <namespace>.<field>.
	DefaultNamespace = "at-webserver.config"
	// DefaultQueryTimeout bounds a single store query.
	DefaultQueryTimeout = 2 * time.Second
)

// Store is the external key-value configuration store. Get reports false for
// any failure: unreachable store, missing key or a store-side error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStore sets the external store queried by the second layer. Without a
// store the layer is skipped.
func WithStore(store Store) Option {
	return func(r *Resolver) {
		r.store = store
	}
}

// WithEnvLookup overrides os.LookupEnv, primarily for tests.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(r *Resolver) {
		if lookup != nil {
			r.lookupEnv = lookup
		}
	}
}

// WithLogger sets the logger that receives the resolved configuration.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNamespace changes the store key prefix.
func WithNamespace(namespace string) Option {
	return func(r *Resolver) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithQueryTimeout bounds every store query. A query that times out counts as
// failed. Zero or negative disables the bound.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		r.queryTimeout = timeout
	}
}

// Resolver layers defaults, store values and environment variables into a
// Config.
type Resolver struct {
	store        Store
	lookupEnv    func(string) (string, bool)
	logger       *zap.Logger
	namespace    string
	queryTimeout time.Duration
}

// NewResolver constructs a Resolver with the provided options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		lookupEnv:    os.LookupEnv,
		logger:       zap.NewNop(),
		namespace:    DefaultNamespace,
		queryTimeout: DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds a new Config from defaults, then the store, then the
// environment. It always returns a usable value.
func (r *Resolver) Resolve(ctx context.Context) Config {
	cfg := Default()

	if r.store != nil {
		r.applyStore(ctx, &cfg)
	}

	r.applyEnv(&cfg)

	r.logger.Info("loaded configuration", zap.Object("config", cfg))
	return cfg
}
