package config

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap/zapcore"
)

// ConnectionType selects which transport sub-configuration is authoritative.
type ConnectionType int

const (
	// Network talks to the modem over TCP.
	Network ConnectionType = iota
	// Serial talks to the modem over a local serial device.
	Serial
)

const (
	networkToken = "NETWORK"
	serialToken  = "SERIAL"
)

// String returns the canonical token for the connection type.
func (c ConnectionType) String() string {
	switch c {
	case Serial:
		return serialToken
	case Network:
		return networkToken
	default:
		return fmt.Sprintf("ConnectionType(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c ConnectionType) MarshalText() ([]byte, error) {
	switch c {
	case Network, Serial:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("unknown connection type %d", int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. Only the exact tokens
// NETWORK and SERIAL are accepted.
func (c *ConnectionType) UnmarshalText(text []byte) error {
	parsed, ok := parseConnectionType(string(text))
	if !ok {
		return fmt.Errorf("unknown connection type %q", string(text))
	}
	*c = parsed
	return nil
}

// NetworkConfig describes the TCP endpoint of the modem.
type NetworkConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    uint16 `yaml:"port" json:"port"`
	Timeout uint64 `yaml:"timeout" json:"timeout"` // seconds
}

// Duration returns the timeout as a time.Duration.
func (n NetworkConfig) Duration() time.Duration {
	return secondsToDuration(n.Timeout)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (n NetworkConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("host", n.Host)
	enc.AddUint16("port", n.Port)
	enc.AddUint64("timeout", n.Timeout)
	return nil
}

// SerialConfig describes the serial device of the modem.
type SerialConfig struct {
	Port     string `yaml:"port" json:"port"`
	Baudrate uint32 `yaml:"baudrate" json:"baudrate"`
	Timeout  uint64 `yaml:"timeout" json:"timeout"` // seconds
}

// Duration returns the timeout as a time.Duration.
func (s SerialConfig) Duration() time.Duration {
	return secondsToDuration(s.Timeout)
}

// secondsToDuration saturates instead of overflowing into a negative value.
func secondsToDuration(seconds uint64) time.Duration {
	if seconds > maxTimeoutSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s SerialConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("port", s.Port)
	enc.AddUint32("baudrate", s.Baudrate)
	enc.AddUint64("timeout", s.Timeout)
	return nil
}

// AtConfig holds both transport configurations. Both are always populated;
// ConnectionType decides which one consumers use.
type AtConfig struct {
	ConnectionType ConnectionType `yaml:"connection_type" json:"connectionType"`
	Network        NetworkConfig  `yaml:"network" json:"network"`
	Serial         SerialConfig   `yaml:"serial" json:"serial"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (a AtConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("connection_type", a.ConnectionType.String())
	if err := enc.AddObject("network", a.Network); err != nil {
		return err
	}
	return enc.AddObject("serial", a.Serial)
}

// NotificationConfig toggles the notification channels.
type NotificationConfig struct {
	// WechatWebhook is empty when webhook delivery is disabled.
	WechatWebhook    string `yaml:"wechat_webhook,omitempty" json:"wechatWebhook,omitempty"`
	LogFile          string `yaml:"log_file" json:"logFile"`
	NotifySMS        bool   `yaml:"notify_sms" json:"notifySms"`
	NotifyCall       bool   `yaml:"notify_call" json:"notifyCall"`
	NotifyMemoryFull bool   `yaml:"notify_memory_full" json:"notifyMemoryFull"`
	NotifySignal     bool   `yaml:"notify_signal" json:"notifySignal"`
}

// WebhookEnabled reports whether a WeChat webhook is configured.
func (n NotificationConfig) WebhookEnabled() bool {
	return n.WechatWebhook != ""
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The webhook URL embeds
// an access key and is only reported as present or absent.
func (n NotificationConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("wechat_webhook", n.WebhookEnabled())
	enc.AddString("log_file", n.LogFile)
	enc.AddBool("notify_sms", n.NotifySMS)
	enc.AddBool("notify_call", n.NotifyCall)
	enc.AddBool("notify_memory_full", n.NotifyMemoryFull)
	enc.AddBool("notify_signal", n.NotifySignal)
	return nil
}

// Config is the resolved runtime configuration. It is built once per process
// and passed by value; nothing in it is shared between copies.
type Config struct {
	AT            AtConfig           `yaml:"at_config" json:"atConfig"`
	Notification  NotificationConfig `yaml:"notification_config" json:"notificationConfig"`
	WebsocketPort uint16             `yaml:"websocket_port" json:"websocketPort"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if err := enc.AddObject("at_config", c.AT); err != nil {
		return err
	}
	if err := enc.AddObject("notification_config", c.Notification); err != nil {
		return err
	}
	enc.AddUint16("websocket_port", c.WebsocketPort)
	return nil
}
