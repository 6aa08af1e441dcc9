package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/kilianp07/cobreuse/core/factory"
)

var sinks = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink makes a sink type available to NewMetricsSink.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinks.Register(name, f)
}

// SinkTypes lists the registered sink types.
func SinkTypes() []string { return sinks.Types() }

// NewMetricsSink builds the configured sinks. No configuration records
// nothing; more than one sink fans out through a MultiSink. Sinks already
// built are closed when a later one fails.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	built := make([]MetricsSink, 0, len(cfgs))
	for i, c := range cfgs {
		s, err := sinks.Create(c)
		if err != nil {
			_ = Close(NewMultiSink(built...))
			return nil, fmt.Errorf("metrics.sinks[%d]: %w", i, err)
		}
		built = append(built, s)
	}
	if len(built) == 1 {
		return built[0], nil
	}
	return NewMultiSink(built...), nil
}

// Close releases s if it holds resources.
func Close(s MetricsSink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Close closes every sink and joins the errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if err := Close(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
