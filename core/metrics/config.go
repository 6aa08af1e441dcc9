package metrics

import (
	"errors"
	"fmt"

	"github.com/kilianp07/cobreuse/core/factory"
)

// Config lists the sinks receiving solve events, in fan-out order.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// Validate rejects sinks without a type. Unknown types are reported by
// NewMetricsSink, once the adapters have registered.
func (c Config) Validate() error {
	var errs []error
	for i, s := range c.Sinks {
		if s.Type == "" {
			errs = append(errs, fmt.Errorf("metrics.sinks[%d]: missing type", i))
		}
	}
	return errors.Join(errs...)
}
