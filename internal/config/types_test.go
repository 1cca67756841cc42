package config

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestConnectionTypeText(t *testing.T) {
	var c ConnectionType
	if err := c.UnmarshalText([]byte("SERIAL")); err != nil || c != Serial {
		t.Fatalf("expected SERIAL to unmarshal, got %v (%v)", c, err)
	}
	if err := c.UnmarshalText([]byte("Serial")); err == nil {
		t.Fatalf("expected error for non-canonical token")
	}
	if _, err := ConnectionType(7).MarshalText(); err == nil {
		t.Fatalf("expected error for unknown connection type")
	}
	if got := ConnectionType(7).String(); got != "ConnectionType(7)" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestConfigEncodings(t *testing.T) {
	cfg := Default()
	cfg.AT.ConnectionType = Serial

	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml marshal: %v", err)
	}
	if !strings.Contains(string(out), "connection_type: SERIAL") {
		t.Fatalf("expected textual connection type in YAML:\n%s", out)
	}
	if strings.Contains(string(out), "wechat_webhook") {
		t.Fatalf("expected absent webhook to be omitted:\n%s", out)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	var decoded Config
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if decoded != cfg {
		t.Fatalf("expected %+v, got %+v", cfg, decoded)
	}
}

func TestTimeoutDurations(t *testing.T) {
	cfg := Default()
	if cfg.AT.Network.Duration() != 10*time.Second || cfg.AT.Serial.Duration() != 10*time.Second {
		t.Fatalf("unexpected default timeouts")
	}

	huge := NetworkConfig{Timeout: 18446744073709551615}
	if d := huge.Duration(); d <= 0 {
		t.Fatalf("expected saturated network timeout, got %v", d)
	}
	serial := SerialConfig{Timeout: maxTimeoutSeconds + 1}
	if d := serial.Duration(); d != time.Duration(math.MaxInt64) {
		t.Fatalf("expected saturated serial timeout, got %v", d)
	}
	edge := SerialConfig{Timeout: maxTimeoutSeconds}
	if d := edge.Duration(); d != time.Duration(maxTimeoutSeconds)*time.Second {
		t.Fatalf("expected exact timeout at the limit, got %v", d)
	}
}
