package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	cfg.Bridge.ServerURL = expandEnvVars(cfg.Bridge.ServerURL)
	cfg.Bridge.Origin = expandEnvVars(cfg.Bridge.Origin)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Bridge.ServerURL == "" {
		cfg.Bridge.ServerURL = "wss://localhost:8000/ws"
	}
	if cfg.Bridge.HandshakeTimeoutSeconds == 0 {
		cfg.Bridge.HandshakeTimeoutSeconds = 10
	}
	if cfg.Transcript.Store == "" {
		cfg.Transcript.Store = "memory"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = "pretty"
	}
}

// applyEnvOverrides reads CELLBRIDGE_* environment variables and overrides
// config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CELLBRIDGE_SERVER_URL"); v != "" {
		cfg.Bridge.ServerURL = v
	}
	if v := os.Getenv("CELLBRIDGE_ORIGIN"); v != "" {
		cfg.Bridge.Origin = v
	}
	if v := os.Getenv("CELLBRIDGE_HANDSHAKE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Bridge.HandshakeTimeoutSeconds = secs
		}
	}
	if v := os.Getenv("CELLBRIDGE_TRANSCRIPT_STORE"); v != "" {
		cfg.Transcript.Store = v
	}
	if v := os.Getenv("CELLBRIDGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
