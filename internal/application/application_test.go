package application

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/at-webserver/internal/config"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := config.Default()
	cfg.AT.ConnectionType = config.Serial
	opts := baseTestOptions(":8085")

	app := New(cfg, opts, zaptest.NewLogger(t))

	if app.server == nil || app.router == nil || app.handler == nil {
		t.Fatalf("expected server, router, and handler to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	if app.Config() != cfg {
		t.Fatalf("expected app to keep the resolved configuration")
	}
}

func TestNewServerAppliesOptions(t *testing.T) {
	opts := baseTestOptions("9090")
	handler := http.NewServeMux()

	server := NewServer(opts, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != opts.ReadHeaderTimeout ||
		server.WriteTimeout != opts.WriteTimeout ||
		server.IdleTimeout != opts.IdleTimeout {
		t.Fatalf("server timeouts do not match options")
	}
}

func TestBuildRootHandler(t *testing.T) {
	apiInvoked := false
	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Fatalf("unexpected path passed to API handler: %s", r.URL.Path)
		}
		apiInvoked = true
		w.WriteHeader(http.StatusNoContent)
	})

	handler := BuildRootHandler(apiHandler)

	t.Run("returns not found outside the API", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("forwards api traffic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
		if !apiInvoked {
			t.Fatalf("expected API handler to be invoked")
		}
	})
}

func TestAppServesConfig(t *testing.T) {
	app := New(config.Default(), baseTestOptions(":0"), zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	app.Server().Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestDefaultServerOptions(t *testing.T) {
	opts := DefaultServerOptions()
	if opts.Addr == "" || opts.RateLimitRPS <= 0 || opts.RateLimitBurst <= 0 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func baseTestOptions(addr string) ServerOptions {
	return ServerOptions{
		Addr:                 addr,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
