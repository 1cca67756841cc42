package application

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/at-webserver/internal/api"
	"github.com/eugenenazirov/at-webserver/internal/config"
)

// ServerOptions configures the status API listener.
type ServerOptions struct {
	Addr                 string
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// DefaultServerOptions returns the listener defaults.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		Addr:                 ":8766",
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         10,
		RateLimitBurst:       20,
	}
}

// App encapsulates the resolved configuration and the status API server.
type App struct {
	cfg     config.Config
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New wires the status API around a copy of the resolved configuration.
func New(cfg config.Config, opts ServerOptions, logger *zap.Logger) *App {
	handler := api.NewHandler(cfg)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(opts.EnableRequestLogging),
		api.WithRateLimit(opts.RateLimitRPS, opts.RateLimitBurst),
	)

	return &App{
		cfg:     cfg,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(opts, BuildRootHandler(apiRouter)),
	}
}

// BuildRootHandler mounts the API under /api/ and answers 404 elsewhere.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.NotFoundHandler())
	return mux
}

// NewServer creates and configures an HTTP server from the provided options.
func NewServer(opts ServerOptions, handler http.Handler) *http.Server {
	addr := opts.Addr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("status API listening",
			zap.String("addr", a.server.Addr),
			zap.Stringer("connection_type", a.cfg.AT.ConnectionType),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Config returns the configuration snapshot the app was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
