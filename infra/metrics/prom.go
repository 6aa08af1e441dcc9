package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/cobreuse/core/metrics"
)

// PromSink records solve outcomes in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	prefix   prometheus.Gauge
	shots    *prometheus.CounterVec
}

// NewPromSink registers solve metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_requests_total",
		Help: "Operations handled by the scheduler by type and outcome",
	}, []string{"type", "outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Wall time of one solve",
		Buckets: prometheus.DefBuckets,
	})
	prefix := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_prefix_length",
		Help: "Fire requests scheduled by the last solve",
	})
	shots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "launcher_shots_total",
		Help: "Shots assigned per launcher position",
	}, []string{"position"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if prefix, err = register(reg, prefix); err != nil {
		return nil, err
	}
	if shots, err = register(reg, shots); err != nil {
		return nil, err
	}
	return &PromSink{requests: requests, duration: duration, prefix: prefix, shots: shots}, nil
}

// register returns the already registered collector when c was registered
// by an earlier sink.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSolve updates the request counters, duration and prefix gauge.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	add := func(typ, outcome string, n int) {
		if n > 0 {
			s.requests.WithLabelValues(typ, outcome).Add(float64(n))
		}
	}
	add("fire", "ok", ev.FiresOK)
	add("fire", "failed", ev.FiresFailed)
	add("plant", "ok", ev.PlantsOK)
	add("plant", "failed", ev.PlantsFailed)
	add("remove", "ok", ev.RemovesOK)
	add("remove", "failed", ev.RemovesFailed)
	s.duration.Observe(ev.Duration.Seconds())
	s.prefix.Set(float64(ev.Prefix))
	return nil
}

// RecordLauncherUsage adds the shots of each launcher position.
func (s *PromSink) RecordLauncherUsage(usage []coremetrics.LauncherUsage) error {
	for _, u := range usage {
		s.shots.WithLabelValues(u.Position).Add(float64(u.Shots))
	}
	return nil
}
