package solvelog

import "fmt"

// Backends accepted by Open.
const (
	BackendJSONL         = "jsonl"
	BackendRotatingJSONL = "rotating-jsonl"
	BackendSQLite        = "sqlite"
)

// Config selects and configures the solve log store.
type Config struct {
	Enabled    bool   `json:"enabled"`
	Backend    string `json:"backend"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = BackendJSONL
	}
	if c.Path == "" {
		switch c.Backend {
		case BackendSQLite:
			c.Path = "cobreuse.db"
		default:
			c.Path = "solves.jsonl"
		}
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 10
	}
}

// Validate checks the backend name.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendJSONL, BackendRotatingJSONL, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("logging.backend: unknown backend %q", c.Backend)
	}
}

// Open creates the store described by cfg. Disabled stores return nil.
func Open(cfg Config) (LogStore, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case BackendRotatingJSONL:
		return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	default:
		return NewJSONLStore(cfg.Path)
	}
}
