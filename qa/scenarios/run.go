package scenarios

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/cobreuse/core/logger"
	"github.com/kilianp07/cobreuse/core/planner"
	"github.com/kilianp07/cobreuse/core/travel"
	"github.com/kilianp07/cobreuse/infra/metrics"
)

// RunScenario solves the scenario plan end to end and compares the report
// with the expectations.
//
//gocyclo:ignore
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	for _, tc := range sc.Expected.Travel {
		got, err := travel.Time(tc.Col, tc.Target)
		if err != nil {
			t.Fatalf("travel(%d, %v): %v", tc.Col, tc.Target, err)
		}
		if got != tc.Time {
			t.Errorf("travel(%d, %v) = %d, want %d", tc.Col, tc.Target, got, tc.Time)
		}
	}
	if len(sc.Plan.Waves) == 0 && len(sc.Plan.Launchers) == 0 {
		return
	}

	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	p := planner.New(planner.DefaultConfig(), logger.NopLogger{}, sink)
	out, err := p.Solve(context.Background(), sc.Plan)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	as := out.Report.Assignments
	if len(as) != len(sc.Expected.Success) {
		t.Fatalf("expected %d assignments, got %d", len(sc.Expected.Success), len(as))
	}
	fired := 0
	for i, a := range as {
		if a.Success != sc.Expected.Success[i] {
			t.Errorf("%s: success %v, want %v (%s)", a.Ref(), a.Success, sc.Expected.Success[i], a.Reason)
		}
		launcher, fireTime := "", 0
		if a.LauncherRow != nil {
			launcher = fmt.Sprintf("%d-%d", *a.LauncherRow, *a.LauncherCol)
			fired++
		}
		if a.FireTime != nil {
			fireTime = *a.FireTime
		}
		if i < len(sc.Expected.Launchers) && launcher != sc.Expected.Launchers[i] {
			t.Errorf("%s: launcher %q, want %q", a.Ref(), launcher, sc.Expected.Launchers[i])
		}
		if i < len(sc.Expected.FireTimes) && fireTime != sc.Expected.FireTimes[i] {
			t.Errorf("%s: fire time %d, want %d", a.Ref(), fireTime, sc.Expected.FireTimes[i])
		}
	}
	for i, want := range sc.Expected.NextAvailable {
		if i >= len(out.Report.NextAvailable) {
			t.Errorf("next available %d missing, want %s", i, want)
			continue
		}
		na := out.Report.NextAvailable[i]
		if got := fmt.Sprintf("%s@%d", na.Position, na.Time); got != want {
			t.Errorf("next available %d = %s, want %s", i, got, want)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Errorf("no metrics recorded")
	}
	if got := testutil.ToFloat64(promPrefix(t, reg)); got != float64(out.Report.Summary.Prefix) {
		t.Errorf("prefix gauge %v, want %d", got, out.Report.Summary.Prefix)
	}
	if fired != out.Report.Summary.FiresOK {
		t.Errorf("summary counts %d fires, assignments %d", out.Report.Summary.FiresOK, fired)
	}
}

// promPrefix returns the prefix gauge registered on reg.
func promPrefix(t *testing.T, reg *prometheus.Registry) prometheus.Collector {
	t.Helper()
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_prefix_length",
		Help: "Fire requests scheduled by the last solve",
	})
	err := reg.Register(g)
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if !ok {
		t.Fatalf("prefix gauge not registered: %v", err)
	}
	return are.ExistingCollector
}
