package config

import "go.uber.org/zap"

// Environment variables read by the last layer.
const (
	EnvConnectionType = "AT_CONNECTION_TYPE"
	EnvNetworkHost    = "AT_NETWORK_HOST"
	EnvNetworkPort    = "AT_NETWORK_PORT"
	EnvSerialPort     = "AT_SERIAL_PORT"
	EnvSerialBaudrate = "AT_SERIAL_BAUDRATE"
	EnvLogFile        = "AT_LOG_FILE"
)

// applyEnv overlays environment variables. Values are used verbatim. An
// unrecognised connection type is ignored rather than forced to Network.
func (r *Resolver) applyEnv(cfg *Config) {
	envOverlay(r, EnvConnectionType, &cfg.AT.ConnectionType, parseConnectionType)
	envOverlay(r, EnvNetworkHost, &cfg.AT.Network.Host, parseRaw)
	envOverlay(r, EnvNetworkPort, &cfg.AT.Network.Port, parseUint16)
	envOverlay(r, EnvSerialPort, &cfg.AT.Serial.Port, parseRaw)
	envOverlay(r, EnvSerialBaudrate, &cfg.AT.Serial.Baudrate, parseUint32)
	envOverlay(r, EnvLogFile, &cfg.Notification.LogFile, parseRaw)
}

func envOverlay[T any](r *Resolver, name string, dst *T, parse parser[T]) {
	raw, present := r.lookupEnv(name)
	if present && !overlay(dst, raw, present, parse) {
		r.logger.Debug("ignoring environment value",
			zap.String("name", name),
			zap.String("value", raw),
		)
	}
}
