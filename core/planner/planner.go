// Package planner runs a plan through validation, timeline resolution,
// occupancy simulation, scheduling and reporting.
package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/cobreuse/core/logger"
	"github.com/kilianp07/cobreuse/core/metrics"
	"github.com/kilianp07/cobreuse/core/model"
	"github.com/kilianp07/cobreuse/core/occupancy"
	"github.com/kilianp07/cobreuse/core/report"
	"github.com/kilianp07/cobreuse/core/scheduler"
	"github.com/kilianp07/cobreuse/core/solvelog"
	"github.com/kilianp07/cobreuse/core/timeline"
)

// Config groups the settings of every stage.
type Config struct {
	Lawn      model.Lawn
	Limits    model.Limits
	Scheduler scheduler.Config
	Report    report.Config
}

// DefaultConfig returns the game lawn, default limits and timings.
func DefaultConfig() Config {
	cfg := Config{Lawn: model.DefaultLawn, Scheduler: scheduler.DefaultConfig()}
	cfg.Limits.SetDefaults()
	cfg.Report.SetDefaults()
	return cfg
}

// Outcome is the result of one Solve.
type Outcome struct {
	SolveID  string
	Report   report.Report
	Result   scheduler.Result
	Duration time.Duration
}

// Conflict is a plant or remove that fails against the launchers existing
// just before it.
type Conflict struct {
	Ref    model.OpRef
	Type   model.OpType
	Time   int
	Reason string
}

// Planner is safe for concurrent use; each Solve works on its own snapshot.
type Planner struct {
	cfg     Config
	log     logger.Logger
	metrics metrics.MetricsSink
	mu      sync.Mutex
	store   solvelog.LogStore
	now     func() time.Time
	newID   func() string
}

// New creates a Planner. A nil sink records nothing.
func New(cfg Config, log logger.Logger, sink metrics.MetricsSink) *Planner {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{cfg: cfg, log: log, metrics: sink, now: time.Now, newID: uuid.NewString}
}

// SetLogStore configures the store used to persist solves.
func (p *Planner) SetLogStore(store solvelog.LogStore) {
	p.mu.Lock()
	p.store = store
	p.mu.Unlock()
}

// Close releases the log store and the metrics sink.
func (p *Planner) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.store != nil {
		errs = append(errs, p.store.Close())
		p.store = nil
	}
	errs = append(errs, metrics.Close(p.metrics))
	return errors.Join(errs...)
}

// Validate reports every input error of plan, joined.
func (p *Planner) Validate(plan model.Plan) error {
	return plan.Validate(p.cfg.Lawn, p.cfg.Limits, timeline.Check)
}

// CheckResult lists the failing plants and removes of a plan and the
// launchers left once every event has been replayed.
type CheckResult struct {
	Conflicts []Conflict
	Final     []model.Launcher
}

// Check validates plan and replays its plants and removes. It does not
// schedule fires.
func (p *Planner) Check(plan model.Plan) (CheckResult, error) {
	if err := p.Validate(plan); err != nil {
		return CheckResult{}, err
	}
	ops := timeline.Resolve(plan.Waves, p.cfg.Lawn.MaxLauncherCol(), p.log)
	sim := occupancy.New(plan.Launchers, ops)
	var res CheckResult
	events := sim.Events()
	for i, out := range sim.Outcomes() {
		if out.Success {
			continue
		}
		ev := events[i]
		res.Conflicts = append(res.Conflicts, Conflict{Ref: ev.Ref, Type: ev.Type, Time: ev.AbsoluteTime, Reason: out.Err.Error()})
	}
	res.Final = sim.Final().Launchers()
	return res, nil
}

// Solve schedules plan. Input errors are returned before anything runs;
// unschedulable operations are reported as failed assignments.
func (p *Planner) Solve(ctx context.Context, plan model.Plan) (Outcome, error) {
	if err := p.Validate(plan); err != nil {
		return Outcome{}, err
	}
	start := p.now()
	id := p.newID()

	ops := timeline.Resolve(plan.Waves, p.cfg.Lawn.MaxLauncherCol(), p.log)
	events := occupancy.New(plan.Launchers, ops).Outcomes()
	res, err := scheduler.New(p.cfg.Scheduler, p.log).Schedule(plan.Launchers, ops)
	if err != nil {
		return Outcome{}, err
	}
	rep := report.Build(ops, events, res, p.cfg.Report, p.cfg.Scheduler.Timing)
	out := Outcome{SolveID: id, Report: rep, Result: res, Duration: p.now().Sub(start)}

	s := rep.Summary
	p.log.Infof("solve %s: %d/%d fires scheduled, prefix %d, bound %.2f",
		id, s.FiresOK, s.FiresOK+s.FiresFailed, s.Prefix, s.UpperBound)
	p.record(out, start)
	p.persist(ctx, plan, out, start)
	return out, nil
}

func (p *Planner) record(out Outcome, at time.Time) {
	s := out.Report.Summary
	ev := metrics.SolveEvent{
		SolveID:       out.SolveID,
		FiresOK:       s.FiresOK,
		FiresFailed:   s.FiresFailed,
		PlantsOK:      s.PlantsOK,
		PlantsFailed:  s.PlantsFailed,
		RemovesOK:     s.RemovesOK,
		RemovesFailed: s.RemovesFailed,
		Prefix:        s.Prefix,
		Variables:     out.Result.Variables,
		Exclusions:    out.Result.Exclusions,
		UpperBound:    s.UpperBound,
		Duration:      out.Duration,
		Time:          at,
	}
	if err := p.metrics.RecordSolve(ev); err != nil {
		p.log.Warnf("record solve metrics: %v", err)
	}
	rec, ok := p.metrics.(metrics.UsageRecorder)
	if !ok {
		return
	}
	var usage []metrics.LauncherUsage
	for pos, shots := range out.Report.Usage() {
		usage = append(usage, metrics.LauncherUsage{SolveID: out.SolveID, Position: pos, Shots: shots, Time: at})
	}
	if err := rec.RecordLauncherUsage(usage); err != nil {
		p.log.Warnf("record launcher usage: %v", err)
	}
}

func (p *Planner) persist(ctx context.Context, plan model.Plan, out Outcome, at time.Time) {
	p.mu.Lock()
	store := p.store
	p.mu.Unlock()
	if store == nil {
		return
	}
	ops := 0
	for _, w := range plan.Waves {
		ops += len(w.Operations)
	}
	rec := solvelog.LogRecord{
		SolveID:    out.SolveID,
		Timestamp:  at,
		PlanName:   plan.Name,
		Waves:      len(plan.Waves),
		Operations: ops,
		Launchers:  len(plan.Launchers),
		Duration:   out.Duration,
		Report:     out.Report,
	}
	if err := store.Append(ctx, rec); err != nil {
		p.log.Errorf("append solve log: %v", err)
	}
}
