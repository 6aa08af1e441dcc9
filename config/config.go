package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/cobreuse/api/solves"
	"github.com/kilianp07/cobreuse/core/metrics"
	"github.com/kilianp07/cobreuse/core/model"
	"github.com/kilianp07/cobreuse/core/planner"
	"github.com/kilianp07/cobreuse/core/report"
	"github.com/kilianp07/cobreuse/core/scheduler"
	"github.com/kilianp07/cobreuse/core/solvelog"
	"github.com/kilianp07/cobreuse/core/travel"
)

type Config struct {
	Lawn    model.Lawn            `json:"lawn"`
	Limits  model.Limits          `json:"limits"`
	Report  report.Config         `json:"report"`
	Bound   scheduler.BoundConfig `json:"bound"`
	Metrics metrics.Config        `json:"metrics"`
	Logging solvelog.Config       `json:"logging"`
	Server  solves.Config         `json:"server"`
}

// Load reads the configuration at path, then applies K_ prefixed
// environment overrides (K_LAWN__ROWS=5 sets lawn.rows). An empty path
// loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills every unset section.
func (c *Config) SetDefaults() {
	if c.Lawn.Rows <= 0 {
		c.Lawn.Rows = model.DefaultLawn.Rows
	}
	if c.Lawn.Columns <= 0 {
		c.Lawn.Columns = model.DefaultLawn.Columns
	}
	c.Limits.SetDefaults()
	c.Report.SetDefaults()
	c.Bound.SetDefaults()
	c.Logging.SetDefaults()
	c.Server.SetDefaults()
}

// Validate checks every section and joins the problems.
func (c Config) Validate() error {
	var errs []error
	if c.Lawn.Columns < 2 || c.Lawn.MaxLauncherCol() > travel.MaxLauncherCol {
		errs = append(errs, fmt.Errorf("lawn.columns: %d outside 2..%d", c.Lawn.Columns, travel.MaxLauncherCol+1))
	}
	if err := c.Metrics.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Logging.Enabled {
		if err := c.Logging.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Planner returns the planner settings derived from c.
func (c Config) Planner() planner.Config {
	cfg := planner.DefaultConfig()
	cfg.Lawn = c.Lawn
	cfg.Limits = c.Limits
	cfg.Report = c.Report
	cfg.Scheduler.Bound = c.Bound
	return cfg
}
