// Package config defines the cellbridge configuration schema and its
// YAML loader.
package config

// Config is the root configuration.
type Config struct {
	Bridge     BridgeConfig     `yaml:"bridge"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BridgeConfig controls the connection to the orchestrator.
type BridgeConfig struct {
	// ServerURL is the orchestrator's WebSocket endpoint.
	ServerURL string `yaml:"serverUrl"`

	// Origin, when set, is sent as the Origin header during the handshake.
	Origin string `yaml:"origin"`

	// HandshakeTimeoutSeconds bounds the initial dial.
	HandshakeTimeoutSeconds int `yaml:"handshakeTimeoutSeconds"`
}

// TranscriptConfig controls conversation persistence.
type TranscriptConfig struct {
	// Store selects the transcript backend: "memory" or "sqlite".
	Store string `yaml:"store"`

	// Path is the SQLite database file. Empty means <base>/data/transcript.db.
	Path string `yaml:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ConsoleStyle string `yaml:"consoleStyle"` // pretty | json
}
