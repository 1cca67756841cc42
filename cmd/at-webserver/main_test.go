package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/at-webserver/internal/config"
	"github.com/eugenenazirov/at-webserver/internal/store"
)

func TestBuildStore(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("uci", func(t *testing.T) {
		if _, ok := buildStore(storeOptions{Kinds: []string{"uci"}, UCIBinary: "uci"}, logger).(*store.UCIStore); !ok {
			t.Fatalf("expected UCI store")
		}
	})

	t.Run("none", func(t *testing.T) {
		if got := buildStore(storeOptions{Kinds: []string{"none"}}, logger); got != nil {
			t.Fatalf("expected nil store, got %T", got)
		}
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		got := buildStore(storeOptions{Kinds: []string{"file"}, File: filepath.Join(t.TempDir(), "missing.yaml")}, logger)
		if got != nil {
			t.Fatalf("expected nil store, got %T", got)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.yaml")
		if err := os.WriteFile(path, []byte("at-webserver:\n  config:\n    network_host: 10.0.0.2\n"), 0o600); err != nil {
			t.Fatalf("write store file: %v", err)
		}
		got := buildStore(storeOptions{Kinds: []string{"file"}, File: path}, logger)
		if _, ok := got.(*store.MapStore); !ok {
			t.Fatalf("expected map store, got %T", got)
		}

		cfg := config.NewResolver(config.WithStore(got), config.WithEnvLookup(func(string) (string, bool) {
			return "", false
		})).Resolve(t.Context())
		if cfg.AT.Network.Host != "10.0.0.2" {
			t.Fatalf("expected host from file store, got %s", cfg.AT.Network.Host)
		}
	})

	t.Run("invalid url is skipped", func(t *testing.T) {
		if got := buildStore(storeOptions{Kinds: []string{"http"}, URL: "not a url"}, logger); got != nil {
			t.Fatalf("expected nil store, got %T", got)
		}
	})

	t.Run("http", func(t *testing.T) {
		if _, ok := buildStore(storeOptions{Kinds: []string{"http"}, URL: "http://127.0.0.1:1/uci"}, logger).(*store.HTTPStore); !ok {
			t.Fatalf("expected HTTP store")
		}
	})

	t.Run("no kinds", func(t *testing.T) {
		if got := buildStore(storeOptions{}, logger); got != nil {
			t.Fatalf("expected nil store, got %T", got)
		}
	})

	t.Run("chain falls through to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.yaml")
		if err := os.WriteFile(path, []byte("at-webserver:\n  config:\n    network_host: 10.0.0.3\n"), 0o600); err != nil {
			t.Fatalf("write store file: %v", err)
		}
		got := buildStore(storeOptions{
			Kinds:     []string{"uci", "file", "none"},
			File:      path,
			UCIBinary: filepath.Join(t.TempDir(), "missing-uci"),
		}, logger)

		chain, ok := got.(store.Chain)
		if !ok {
			t.Fatalf("expected chained store, got %T", got)
		}
		if len(chain) != 2 {
			t.Fatalf("expected 2 chained backends, got %d", len(chain))
		}
		if _, ok := chain[0].(*store.UCIStore); !ok {
			t.Fatalf("expected UCI store first, got %T", chain[0])
		}

		cfg := config.NewResolver(config.WithStore(got), config.WithEnvLookup(func(string) (string, bool) {
			return "", false
		})).Resolve(t.Context())
		if cfg.AT.Network.Host != "10.0.0.3" {
			t.Fatalf("expected host from file store, got %s", cfg.AT.Network.Host)
		}
	})

	t.Run("unusable backends are dropped from the chain", func(t *testing.T) {
		got := buildStore(storeOptions{
			Kinds:     []string{"http", "uci"},
			URL:       "not a url",
			UCIBinary: "uci",
		}, logger)
		if _, ok := got.(*store.UCIStore); !ok {
			t.Fatalf("expected lone UCI store, got %T", got)
		}
	})
}

func TestWriteConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AT.ConnectionType = config.Serial

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeConfig(&buf, cfg, "yaml"); err != nil {
			t.Fatalf("writeConfig returned error: %v", err)
		}
		if !strings.Contains(buf.String(), "connection_type: SERIAL") {
			t.Fatalf("unexpected YAML output:\n%s", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeConfig(&buf, cfg, "json"); err != nil {
			t.Fatalf("writeConfig returned error: %v", err)
		}
		var decoded config.Config
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("decode output: %v", err)
		}
		if decoded != cfg {
			t.Fatalf("expected %+v, got %+v", cfg, decoded)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := writeConfig(&bytes.Buffer{}, cfg, "toml"); err == nil {
			t.Fatalf("expected error for unsupported format")
		}
	})
}
