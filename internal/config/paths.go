package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".cellbridge"

// Paths holds resolved filesystem paths for cellbridge data.
type Paths struct {
	Base   string // ~/.cellbridge
	Config string // ~/.cellbridge/config.yaml
	Logs   string // ~/.cellbridge/logs
	Data   string // ~/.cellbridge/data
}

// ResolvePaths computes all standard paths from the home directory.
// If CELLBRIDGE_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("CELLBRIDGE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Logs:   filepath.Join(base, "logs"),
		Data:   filepath.Join(base, "data"),
	}, nil
}

// EnsureDirs creates all standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Logs, p.Data} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}

// TranscriptDB returns the configured transcript database path, falling
// back to the standard location under the data directory.
func (p Paths) TranscriptDB(cfg *Config) string {
	if cfg.Transcript.Path != "" {
		return cfg.Transcript.Path
	}
	return filepath.Join(p.Data, "transcript.db")
}
