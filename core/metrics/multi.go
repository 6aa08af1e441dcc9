package metrics

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSolve(ev SolveEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordLauncherUsage forwards usage to the sinks supporting it.
func (m *MultiSink) RecordLauncherUsage(usage []LauncherUsage) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(UsageRecorder); ok {
			if err := rec.RecordLauncherUsage(usage); err != nil {
				return err
			}
		}
	}
	return nil
}
