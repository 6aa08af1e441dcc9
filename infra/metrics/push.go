package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/cobreuse/core/metrics"
)

// PushSink records into a private registry and pushes it to a Prometheus
// Pushgateway after every event. Batch runs exit before a scrape could
// happen, so the gateway keeps the last values.
type PushSink struct {
	*PromSink
	pusher *push.Pusher
}

// NewPushSink creates a sink pushing to the gateway at url under job.
func NewPushSink(url, job string) (*PushSink, error) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		return nil, err
	}
	if job == "" {
		job = "cobreuse"
	}
	return &PushSink{PromSink: prom, pusher: push.New(url, job).Gatherer(reg)}, nil
}

// RecordSolve records the event and pushes the registry.
func (s *PushSink) RecordSolve(ev coremetrics.SolveEvent) error {
	if err := s.PromSink.RecordSolve(ev); err != nil {
		return err
	}
	return s.pusher.Push()
}

// RecordLauncherUsage records the usage and pushes the registry.
func (s *PushSink) RecordLauncherUsage(usage []coremetrics.LauncherUsage) error {
	if err := s.PromSink.RecordLauncherUsage(usage); err != nil {
		return err
	}
	return s.pusher.Push()
}
