package config

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Store keys, relative to the resolver namespace.
const (
	KeyConnectionType   = "connection_type"
	KeyNetworkHost      = "network_host"
	KeyNetworkPort      = "network_port"
	KeyNetworkTimeout   = "network_timeout"
	KeySerialPort       = "serial_port"
	KeySerialBaudrate   = "serial_baudrate"
	KeySerialTimeout    = "serial_timeout"
	KeyWechatWebhook    = "wechat_webhook"
	KeyLogFile          = "log_file"
	KeyNotifySMS        = "notify_sms"
	KeyNotifyCall       = "notify_call"
	KeyNotifyMemoryFull = "notify_memory_full"
	KeyNotifySignal     = "notify_signal"
	KeyWebsocketPort    = "websocket_port"
)

// applyStore overlays store values field by field. Queries run sequentially.
func (r *Resolver) applyStore(ctx context.Context, cfg *Config) {
	if raw, ok := r.query(ctx, KeyConnectionType); ok {
		cfg.AT.ConnectionType = connectionTypeOrFailSafe(raw)
	}

	storeOverlay(ctx, r, KeyNetworkHost, &cfg.AT.Network.Host, parseNonEmpty)
	storeOverlay(ctx, r, KeyNetworkPort, &cfg.AT.Network.Port, parseUint16)
	storeOverlay(ctx, r, KeyNetworkTimeout, &cfg.AT.Network.Timeout, parseTimeout)

	storeOverlay(ctx, r, KeySerialPort, &cfg.AT.Serial.Port, parseNonEmpty)
	storeOverlay(ctx, r, KeySerialBaudrate, &cfg.AT.Serial.Baudrate, parseUint32)
	storeOverlay(ctx, r, KeySerialTimeout, &cfg.AT.Serial.Timeout, parseTimeout)

	storeOverlay(ctx, r, KeyWechatWebhook, &cfg.Notification.WechatWebhook, parseNonEmpty)
	storeOverlay(ctx, r, KeyLogFile, &cfg.Notification.LogFile, parseNonEmpty)
	storeOverlay(ctx, r, KeyNotifySMS, &cfg.Notification.NotifySMS, parseBool)
	storeOverlay(ctx, r, KeyNotifyCall, &cfg.Notification.NotifyCall, parseBool)
	storeOverlay(ctx, r, KeyNotifyMemoryFull, &cfg.Notification.NotifyMemoryFull, parseBool)
	storeOverlay(ctx, r, KeyNotifySignal, &cfg.Notification.NotifySignal, parseBool)

	storeOverlay(ctx, r, KeyWebsocketPort, &cfg.WebsocketPort, parseUint16)
}

func storeOverlay[T any](ctx context.Context, r *Resolver, field string, dst *T, parse parser[T]) {
	raw, ok := r.query(ctx, field)
	if !ok {
		return
	}
	if !overlay(dst, raw, true, parse) {
		r.logger.Debug("ignoring store value",
			zap.String("key", r.key(field)),
			zap.String("value", raw),
		)
	}
}

// query fetches one field from the store, bounded by the query timeout.
func (r *Resolver) query(ctx context.Context, field string) (string, bool) {
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	key := r.key(field)
	raw, ok := r.store.Get(ctx, key)
	if !ok {
		r.logger.Debug("store value unavailable", zap.String("key", key))
		return "", false
	}
	return strings.TrimSpace(raw), true
}

func (r *Resolver) key(field string) string {
	return r.namespace + "." + field
}
