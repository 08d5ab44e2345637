package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Bridge.ServerURL == "" {
		issues = append(issues, ValidationIssue{
			Path:    "bridge.serverUrl",
			Message: "must not be empty",
		})
	} else if !strings.HasPrefix(cfg.Bridge.ServerURL, "ws://") && !strings.HasPrefix(cfg.Bridge.ServerURL, "wss://") {
		issues = append(issues, ValidationIssue{
			Path:    "bridge.serverUrl",
			Message: fmt.Sprintf("must be a ws:// or wss:// URL, got %q", cfg.Bridge.ServerURL),
		})
	}

	if cfg.Bridge.HandshakeTimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "bridge.handshakeTimeoutSeconds",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Bridge.HandshakeTimeoutSeconds),
		})
	}

	validStores := []string{"memory", "sqlite"}
	if cfg.Transcript.Store != "" && !slices.Contains(validStores, cfg.Transcript.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "transcript.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Transcript.Store),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	return issues
}
