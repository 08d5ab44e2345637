package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Bridge: BridgeConfig{
			ServerURL:               "wss://localhost:8000/ws",
			HandshakeTimeoutSeconds: 10,
		},
		Transcript: TranscriptConfig{
			Store: "memory",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
