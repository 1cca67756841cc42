package config

const (
	defaultNetworkHost    = "192.168.8.1"
	defaultNetworkPort    = 20249
	defaultNetworkTimeout = 10
	defaultSerialPort     = "/dev/ttyUSB2"
	defaultSerialBaudrate = 115200
	defaultSerialTimeout  = 10
	defaultLogFile        = "/var/log/at-notifications.log"
	defaultWebsocketPort  = 8765
)

// Default returns the compiled-in baseline configuration. Every field is set.
func Default() Config {
	return Config{
		AT: AtConfig{
			ConnectionType: Network,
			Network: NetworkConfig{
				Host:    defaultNetworkHost,
				Port:    defaultNetworkPort,
				Timeout: defaultNetworkTimeout,
			},
			Serial: SerialConfig{
				Port:     defaultSerialPort,
				Baudrate: defaultSerialBaudrate,
				Timeout:  defaultSerialTimeout,
			},
		},
		Notification: NotificationConfig{
			LogFile:          defaultLogFile,
			NotifySMS:        true,
			NotifyCall:       true,
			NotifyMemoryFull: true,
			NotifySignal:     true,
		},
		WebsocketPort: defaultWebsocketPort,
	}
}
