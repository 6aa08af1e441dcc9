package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cobreuse/core/factory"
)

type recordSink struct {
	solves int
	usage  int
}

func (r *recordSink) RecordSolve(SolveEvent) error {
	r.solves++
	return nil
}

func (r *recordSink) RecordLauncherUsage([]LauncherUsage) error {
	r.usage++
	return nil
}

type solveOnly struct{ err error }

func (s solveOnly) RecordSolve(SolveEvent) error { return s.err }

// TestMultiSink ensures events are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, solveOnly{}, s2)
	require.NoError(t, m.RecordSolve(SolveEvent{}))
	require.NoError(t, m.RecordLauncherUsage(nil))
	assert.Equal(t, 1, s1.solves)
	assert.Equal(t, 1, s2.solves)
	assert.Equal(t, 1, s1.usage)
	assert.Equal(t, 1, s2.usage)
}

func TestMultiSinkStopsOnError(t *testing.T) {
	s := &recordSink{}
	boom := errors.New("boom")
	m := NewMultiSink(solveOnly{err: boom}, s)
	assert.ErrorIs(t, m.RecordSolve(SolveEvent{}), boom)
	assert.Zero(t, s.solves)
}

func TestNewMetricsSinkDefaultsToNop(t *testing.T) {
	s, err := NewMetricsSink(nil)
	require.NoError(t, err)
	assert.IsType(t, NopSink{}, s)
}

type closeSink struct {
	NopSink
	closed *int
}

func (c closeSink) Close() error {
	*c.closed++
	return nil
}

func TestNewMetricsSink(t *testing.T) {
	closed := 0
	_ = RegisterMetricsSink("test-closer", func(map[string]any) (MetricsSink, error) {
		return closeSink{closed: &closed}, nil
	})
	assert.Contains(t, SinkTypes(), "test-closer")

	one, err := NewMetricsSink([]factory.ModuleConfig{{Type: "test-closer"}})
	require.NoError(t, err)
	assert.IsType(t, closeSink{}, one)

	two, err := NewMetricsSink([]factory.ModuleConfig{{Type: "test-closer"}, {Type: "test-closer"}})
	require.NoError(t, err)
	require.IsType(t, &MultiSink{}, two)
	require.NoError(t, Close(two))
	assert.Equal(t, 2, closed)

	_, err = NewMetricsSink([]factory.ModuleConfig{{Type: "test-closer"}, {Type: "missing"}})
	assert.ErrorIs(t, err, factory.ErrUnknownType)
	assert.ErrorContains(t, err, "metrics.sinks[1]")
	assert.Equal(t, 3, closed)
}
