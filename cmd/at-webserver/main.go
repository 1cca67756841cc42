package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/at-webserver/internal/application"
	"github.com/eugenenazirov/at-webserver/internal/config"
	"github.com/eugenenazirov/at-webserver/internal/logging"
	"github.com/eugenenazirov/at-webserver/internal/probe"
	"github.com/eugenenazirov/at-webserver/internal/store"
)

var signalNotify = signal.Notify

// storeOptions selects the external configuration store backends. Kinds are
// consulted in order.
type storeOptions struct {
	Kinds     []string
	File      string
	URL       string
	UCIBinary string
}

func main() {
	kingpinApp := kingpin.New("at-webserver", "AT web server - resolves the runtime configuration and checks the modem transport")
	storeKinds := kingpinApp.Flag("store", "External configuration store backend; repeat to consult several in order").Default("uci").Enums("uci", "file", "http", "none")
	storeFile := kingpinApp.Flag("store-file", "YAML file backing the store when --store=file").String()
	storeURL := kingpinApp.Flag("store-url", "Base URL of the store when --store=http").String()
	uciBinary := kingpinApp.Flag("uci-binary", "Path to the uci executable").Default("uci").String()
	namespace := kingpinApp.Flag("namespace", "Prefix of every store key").Default(config.DefaultNamespace).String()
	storeTimeout := kingpinApp.Flag("store-timeout", "Upper bound for a single store query").Default("2s").Duration()
	logLevel := kingpinApp.Flag("log-level", "Minimum log level").Default("info").Enum("debug", "info", "warn", "error")
	logFormat := kingpinApp.Flag("log-format", "Log encoding").Default("json").Enum("json", "console")

	showCmd := kingpinApp.Command("show", "Resolve and print the effective configuration").Default()
	showFormat := showCmd.Flag("format", "Output format").Default("yaml").Enum("yaml", "json")

	serveCmd := kingpinApp.Command("serve", "Resolve the configuration and expose it over a read-only status API")
	addr := serveCmd.Flag("addr", "Status API listen address").Default(application.DefaultServerOptions().Addr).String()
	rateLimitRPS := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("10").Float64()
	rateLimitBurst := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("20").Int()
	requestLogging := serveCmd.Flag("request-logging", "Log every status API request").Default("true").Bool()
	shutdownGrace := serveCmd.Flag("shutdown-grace-period", "Time allowed for in-flight requests on shutdown").Default("10s").Duration()

	probeCmd := kingpinApp.Command("probe", "Check that the selected modem transport is reachable")

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	logger, err := logging.New(logging.WithLevel(*logLevel), logging.WithEncoding(*logFormat))
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	backend := buildStore(storeOptions{
		Kinds:     *storeKinds,
		File:      *storeFile,
		URL:       *storeURL,
		UCIBinary: *uciBinary,
	}, logger)

	resolver := config.NewResolver(
		config.WithStore(backend),
		config.WithLogger(logger),
		config.WithNamespace(*namespace),
		config.WithQueryTimeout(*storeTimeout),
	)
	ctx := context.Background()
	cfg := resolver.Resolve(ctx)

	switch command {
	case showCmd.FullCommand():
		if err := writeConfig(os.Stdout, cfg, *showFormat); err != nil {
			logger.Fatal("failed to print configuration", zap.Error(err))
		}

	case serveCmd.FullCommand():
		opts := application.DefaultServerOptions()
		opts.Addr = *addr
		opts.RateLimitRPS = *rateLimitRPS
		opts.RateLimitBurst = *rateLimitBurst
		opts.EnableRequestLogging = *requestLogging

		app := application.New(cfg, opts, logger)
		if err := app.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
		shutdown(app.Server(), *shutdownGrace, logger)

	case probeCmd.FullCommand():
		if _, err := probe.New(probe.WithLogger(logger)).Check(ctx, cfg.AT); err != nil {
			logger.Error("transport unreachable", zap.Error(err))
			_ = logger.Sync()
			os.Exit(1)
		}
	}
}

// buildStore returns the configured backend, or nil when the store layer
// should be skipped. Several backends are combined into a store.Chain where
// the first backend holding a key wins. Backends that cannot be set up are
// logged and skipped; resolution falls back to defaults and environment.
func buildStore(opts storeOptions, logger *zap.Logger) config.Store {
	var backends store.Chain
	for _, kind := range opts.Kinds {
		if backend := buildBackend(kind, opts, logger); backend != nil {
			backends = append(backends, backend)
		}
	}

	switch len(backends) {
	case 0:
		return nil
	case 1:
		return backends[0]
	default:
		return backends
	}
}

func buildBackend(kind string, opts storeOptions, logger *zap.Logger) store.Getter {
	switch kind {
	case "uci":
		return store.NewUCIStore(
			store.WithBinary(opts.UCIBinary),
			store.WithUCILogger(logger),
		)
	case "file":
		fileStore, err := store.LoadFile(opts.File)
		if err != nil {
			logger.Warn("configuration store file unavailable", zap.String("path", opts.File), zap.Error(err))
			return nil
		}
		return fileStore
	case "http":
		httpStore, err := store.NewHTTPStore(opts.URL, store.WithHTTPLogger(logger))
		if err != nil {
			logger.Warn("configuration store URL unusable", zap.Error(err))
			return nil
		}
		return httpStore
	default:
		return nil
	}
}

func writeConfig(w io.Writer, cfg config.Config, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
