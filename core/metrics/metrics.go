package metrics

import "time"

// SolveEvent summarizes one planner run.
type SolveEvent struct {
	SolveID       string
	FiresOK       int
	FiresFailed   int
	PlantsOK      int
	PlantsFailed  int
	RemovesOK     int
	RemovesFailed int
	Prefix        int
	Variables     int
	Exclusions    int
	UpperBound    float64
	Duration      time.Duration
	Time          time.Time
}

// MetricsSink records solve outcomes for observability purposes.
type MetricsSink interface {
	RecordSolve(ev SolveEvent) error
}

// LauncherUsage is the number of shots assigned to one launcher position.
type LauncherUsage struct {
	SolveID  string
	Position string
	Shots    int
	Time     time.Time
}

// UsageRecorder is implemented by sinks able to record launcher usage.
type UsageRecorder interface {
	RecordLauncherUsage(usage []LauncherUsage) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error              { return nil }
func (NopSink) RecordLauncherUsage([]LauncherUsage) error { return nil }
