package scheduler

import "github.com/kilianp07/cobreuse/core/model"

// BoundConfig controls the LP relaxation computed next to the schedule.
type BoundConfig struct {
	Disabled bool `json:"disabled"`
	// MaxVariables skips the relaxation for larger problems.
	MaxVariables int `json:"max_variables"`
}

// SetDefaults applies sane defaults.
func (c *BoundConfig) SetDefaults() {
	if c.MaxVariables <= 0 {
		c.MaxVariables = 256
	}
}

// Config defines scheduling parameters.
type Config struct {
	Timing model.Timing
	Bound  BoundConfig
}

// DefaultConfig returns the game timings with the bound enabled.
func DefaultConfig() Config {
	cfg := Config{Timing: model.DefaultTiming()}
	cfg.Bound.SetDefaults()
	return cfg
}
