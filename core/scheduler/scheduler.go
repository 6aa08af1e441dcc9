package scheduler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kilianp07/cobreuse/core/logger"
	"github.com/kilianp07/cobreuse/core/model"
	"github.com/kilianp07/cobreuse/core/occupancy"
	"github.com/kilianp07/cobreuse/core/sat"
	"github.com/kilianp07/cobreuse/core/travel"
)

// ErrModelLost means the solver rejected a prefix it had accepted before.
var ErrModelLost = errors.New("solver lost a satisfiable prefix")

// newSolver points to the solver factory. It can be overridden in tests.
var newSolver = func() sat.Solver { return sat.NewGini() }

// candidate is one (request, launcher) decision variable.
type candidate struct {
	request  int
	life     int
	fireTime int
	lit      sat.Lit
}

type request struct {
	op    model.AbsoluteOperation
	cands []int
}

// Result is the outcome of one Schedule call.
type Result struct {
	// Fires holds one outcome per fire request in chronological order.
	Fires []model.FireOutcome
	// NextAvailable lists launchers alive at the end of the timeline.
	NextAvailable []model.NextAvailable
	Lifetimes     []occupancy.Lifetime
	// Prefix is the number of leading requests that were scheduled.
	Prefix      int
	Variables   int
	Exclusions  int
	SolverCalls int
	// UpperBound is the LP relaxation optimum; BoundExact is false when
	// the relaxation was skipped and UpperBound only counts the requests
	// having a candidate.
	UpperBound float64
	BoundExact bool
}

// Scheduler is stateless between Schedule calls.
type Scheduler struct {
	cfg Config
	log logger.Logger
}

// New returns a Scheduler. A nil logger discards output.
func New(cfg Config, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Scheduler{cfg: cfg, log: log}
}

// Schedule assigns launchers to the fire requests of ops, which must be
// sorted by absolute time. The returned error is only set for inputs that
// break domain invariants; unschedulable requests are failed outcomes.
func (s *Scheduler) Schedule(launchers []model.Launcher, ops []model.AbsoluteOperation) (Result, error) {
	sim := occupancy.New(launchers, ops)
	lives := sim.Lifetimes()
	reqs, cands, err := s.candidates(lives, ops)
	if err != nil {
		return Result{}, err
	}
	res := Result{Lifetimes: lives, Variables: len(cands)}

	solver := newSolver()
	for i := range cands {
		cands[i].lit = solver.NewVar()
	}
	pairs := exclusions(lives, cands, s.cfg.Timing.Cooldown)
	for _, p := range pairs {
		solver.AddMutualExclusion(cands[p[0]].lit, cands[p[1]].lit)
	}
	res.Exclusions = len(pairs)

	calls := 0
	var acts []sat.Lit
	modelStale := false
	for k, r := range reqs {
		if len(r.cands) == 0 {
			s.log.Debugf("request %s at %d has no candidate launcher", r.op.Ref, r.op.AbsoluteTime)
			break
		}
		act := solver.NewVar()
		clause := make([]sat.Lit, 0, len(r.cands)+1)
		clause = append(clause, act.Not())
		for _, ci := range r.cands {
			clause = append(clause, cands[ci].lit)
		}
		solver.AddClause(clause...)
		calls++
		if !solver.Solve(append(acts[:len(acts):len(acts)], act)...) {
			s.log.Debugf("request %s at %d conflicts with the schedule so far", r.op.Ref, r.op.AbsoluteTime)
			modelStale = true
			break
		}
		acts = append(acts, act)
		res.Prefix = k + 1
	}
	if modelStale && res.Prefix > 0 {
		calls++
		if !solver.Solve(acts...) {
			return Result{}, ErrModelLost
		}
	}
	res.SolverCalls = calls

	res.Fires = make([]model.FireOutcome, len(reqs))
	lastFire := make(map[int]int)
	for k, r := range reqs {
		out := model.FireOutcome{OriginalIndex: r.op.OriginalIndex}
		if k < res.Prefix {
			for _, ci := range r.cands {
				c := cands[ci]
				if !solver.Value(c.lit) {
					continue
				}
				out.Success = true
				out.Launcher = lives[c.life].Launcher
				out.FireTime = c.fireTime
				if prev, ok := lastFire[c.life]; !ok || c.fireTime > prev {
					lastFire[c.life] = c.fireTime
				}
				break
			}
			if !out.Success {
				return Result{}, fmt.Errorf("request %s: %w", r.op.Ref, ErrModelLost)
			}
		}
		res.Fires[k] = out
	}

	res.NextAvailable, err = s.nextAvailable(lives, lastFire)
	if err != nil {
		return Result{}, err
	}

	if s.cfg.Bound.Disabled {
		res.UpperBound, res.BoundExact = float64(withCandidates(reqs)), false
	} else {
		res.UpperBound, res.BoundExact = s.upperBound(reqs, cands, pairs)
	}
	s.log.Debugw("schedule solved", map[string]any{
		"requests":    len(reqs),
		"prefix":      res.Prefix,
		"variables":   res.Variables,
		"exclusions":  res.Exclusions,
		"solverCalls": res.SolverCalls,
		"upperBound":  res.UpperBound,
	})
	return res, nil
}

// candidates enumerates the decision variables of every fire request.
func (s *Scheduler) candidates(lives []occupancy.Lifetime, ops []model.AbsoluteOperation) ([]request, []candidate, error) {
	var reqs []request
	var cands []candidate
	for _, op := range ops {
		if op.Type != model.OpFire {
			continue
		}
		r := request{op: op}
		for li, l := range lives {
			if !op.Eligible.Contains(l.Launcher.Col) {
				continue
			}
			tt, err := travel.Time(l.Launcher.Col, op.TargetCol)
			if err != nil {
				return nil, nil, fmt.Errorf("launcher %s: %w", l.Launcher, err)
			}
			ft := op.AbsoluteTime - tt
			if !l.CanFire(ft, s.cfg.Timing) {
				continue
			}
			r.cands = append(r.cands, len(cands))
			cands = append(cands, candidate{request: len(reqs), life: li, fireTime: ft})
		}
		reqs = append(reqs, r)
	}
	return reqs, cands, nil
}

// exclusions returns the candidate pairs sharing a launcher whose fire
// times are closer than the cooldown.
func exclusions(lives []occupancy.Lifetime, cands []candidate, cooldown int) [][2]int {
	byLife := make([][]int, len(lives))
	for i, c := range cands {
		byLife[c.life] = append(byLife[c.life], i)
	}
	var pairs [][2]int
	for _, list := range byLife {
		sort.SliceStable(list, func(a, b int) bool {
			return cands[list[a]].fireTime < cands[list[b]].fireTime
		})
		for a := 0; a < len(list); a++ {
			for b := a + 1; b < len(list); b++ {
				if cands[list[b]].fireTime-cands[list[a]].fireTime >= cooldown {
					break
				}
				pairs = append(pairs, [2]int{list[a], list[b]})
			}
		}
	}
	return pairs
}

func (s *Scheduler) nextAvailable(lives []occupancy.Lifetime, lastFire map[int]int) ([]model.NextAvailable, error) {
	var out []model.NextAvailable
	for i, l := range lives {
		if l.Removed {
			continue
		}
		na := model.NextAvailable{Launcher: l.Launcher}
		if ft, ok := lastFire[i]; ok {
			tt, err := travel.Time(l.Launcher.Col, s.cfg.Timing.ReferenceColumn)
			if err != nil {
				return nil, fmt.Errorf("launcher %s: %w", l.Launcher, err)
			}
			na.Time = ft + s.cfg.Timing.Cooldown + tt
		}
		out = append(out, na)
	}
	return out, nil
}

func withCandidates(reqs []request) int {
	n := 0
	for _, r := range reqs {
		if len(r.cands) > 0 {
			n++
		}
	}
	return n
}
