package occupancy

import (
	"math"

	"github.com/kilianp07/cobreuse/core/model"
)

// Lifetime is one launcher instance: an initial launcher or the result of
// a plant, possibly ended by a remove.
type Lifetime struct {
	ID        int
	Launcher  model.Launcher
	Initial   bool
	PlantTime int
	Removed   bool
	// RemoveTime is only meaningful when Removed is true.
	RemoveTime int
}

// Window returns the first and last fire time the launcher accepts.
// Initial launchers are ready from the start of time, launchers never
// removed stay ready forever.
func (l Lifetime) Window(t model.Timing) (from, until int) {
	from, until = math.MinInt, math.MaxInt
	if !l.Initial {
		from = l.PlantTime + t.ArmingDelay
	}
	if l.Removed {
		until = l.RemoveTime - t.ImpactMargin
	}
	return from, until
}

// CanFire reports whether a shot leaving at fireTime fits the window.
func (l Lifetime) CanFire(fireTime int, t model.Timing) bool {
	from, until := l.Window(t)
	return from <= fireTime && fireTime <= until
}

// Simulator replays plant and remove events against an initial launcher
// set. It never mutates its inputs; every query rebuilds its own State.
type Simulator struct {
	initial []model.Launcher
	events  []model.AbsoluteOperation
}

// New keeps the plant and remove operations of ops, which must be sorted
// by absolute time.
func New(initial []model.Launcher, ops []model.AbsoluteOperation) *Simulator {
	s := &Simulator{initial: append([]model.Launcher(nil), initial...)}
	for _, op := range ops {
		if op.Type == model.OpPlant || op.Type == model.OpRemove {
			s.events = append(s.events, op)
		}
	}
	return s
}

// Events returns the plant and remove operations in replay order.
func (s *Simulator) Events() []model.AbsoluteOperation {
	return append([]model.AbsoluteOperation(nil), s.events...)
}

// groupEnd returns the index after the last event sharing the timestamp of
// events[start].
func (s *Simulator) groupEnd(start int) int {
	end := start + 1
	for end < len(s.events) && s.events[end].AbsoluteTime == s.events[start].AbsoluteTime {
		end++
	}
	return end
}

// StateBefore returns the launchers existing just before event cursor, an
// index into Events().
// Events at the cursor's timestamp follow authoring order, except that a
// plant sees every remove of the same instant as already done.
func (s *Simulator) StateBefore(cursor int) State {
	st, start := s.run(cursor, nil, nil)
	return s.within(st, start, s.groupEnd(start), cursor)
}

// Validate checks event cursor against the state just before it.
func (s *Simulator) Validate(cursor int) error {
	return s.check(s.StateBefore(cursor), cursor)
}

// Outcomes validates every event, each against its own replay.
func (s *Simulator) Outcomes() []model.EventOutcome {
	errs := make([]error, len(s.events))
	s.run(-1, nil, errs)
	out := make([]model.EventOutcome, len(s.events))
	for i, ev := range s.events {
		out[i] = model.EventOutcome{OriginalIndex: ev.OriginalIndex, Success: errs[i] == nil, Err: errs[i]}
	}
	return out
}

// Lifetimes returns every launcher instance: initial launchers in input
// order, then planted ones in replay order. Only events reported as
// successful by Outcomes start or end an instance.
func (s *Simulator) Lifetimes() []Lifetime {
	lives := make([]Lifetime, len(s.initial))
	for i, l := range s.initial {
		lives[i] = Lifetime{ID: i, Launcher: l, Initial: true}
	}
	s.run(-1, &lives, nil)
	return lives
}

// Final returns the launchers existing after the last event.
func (s *Simulator) Final() State {
	st, _ := s.run(-1, nil, nil)
	return st
}

// run replays whole timestamp groups until the one holding event stop, or
// to the end when stop is negative. It returns the state at that point and
// the index of the first event not replayed. Event errors are stored in
// errs and instances in lives when they are not nil.
func (s *Simulator) run(stop int, lives *[]Lifetime, errs []error) (State, int) {
	st := newState(s.initial)
	r := replay{sim: s, state: &st, lives: lives}
	for i := 0; i < len(s.events); {
		end := s.groupEnd(i)
		if stop >= i && stop < end {
			return st, i
		}
		groupErrs := make([]error, end-i)
		for j := i; j < end; j++ {
			groupErrs[j-i] = s.check(s.within(st, i, end, j), j)
		}
		if errs != nil {
			copy(errs[i:end], groupErrs)
		}
		r.commit(i, groupErrs)
		i = end
	}
	return st, len(s.events)
}

// within returns the state just before cursor, given st the state at the
// start of the group [start, end) holding it.
func (s *Simulator) within(st State, start, end, cursor int) State {
	cp := st.clone()
	r := replay{sim: s, state: &cp}
	if s.events[cursor].Type == model.OpPlant {
		for j := start; j < end; j++ {
			if s.events[j].Type == model.OpRemove {
				r.apply(j)
			}
		}
		for j := start; j < cursor; j++ {
			if s.events[j].Type == model.OpPlant {
				r.apply(j)
			}
		}
		return cp
	}
	for j := start; j < cursor; j++ {
		r.apply(j)
	}
	return cp
}

func (s *Simulator) check(st State, cursor int) error {
	ev := s.events[cursor]
	if ev.Type == model.OpPlant {
		return ValidatePlant(st, ev.Row, ev.PlantCol())
	}
	return ValidateRemove(st, ev.Row, ev.PlantCol())
}

type replay struct {
	sim   *Simulator
	state *State
	// lives is nil unless instances are being recorded.
	lives *[]Lifetime
}

// apply performs event j if it is valid in the current state.
func (r *replay) apply(j int) {
	ev := r.sim.events[j]
	col := ev.PlantCol()
	if ev.Type == model.OpPlant {
		if ValidatePlant(*r.state, ev.Row, col) == nil {
			r.plant(ev)
		}
		return
	}
	if i := r.state.find(ev.Row, col); i >= 0 {
		r.remove(i, ev)
	}
}

// commit performs the successful events of the group starting at start;
// errs holds one validation result per event of the group. Removes of
// launchers existing at the group's instant go first, then plants, then
// removes of launchers planted in the group.
func (r *replay) commit(start int, errs []error) {
	var deferred []model.AbsoluteOperation
	for k, err := range errs {
		ev := r.sim.events[start+k]
		if err != nil || ev.Type != model.OpRemove {
			continue
		}
		if i := r.state.find(ev.Row, ev.PlantCol()); i >= 0 {
			r.remove(i, ev)
		} else {
			deferred = append(deferred, ev)
		}
	}
	for k, err := range errs {
		if ev := r.sim.events[start+k]; err == nil && ev.Type == model.OpPlant {
			r.plant(ev)
		}
	}
	for _, ev := range deferred {
		if i := r.state.find(ev.Row, ev.PlantCol()); i >= 0 {
			r.remove(i, ev)
		}
	}
}

func (r *replay) plant(ev model.AbsoluteOperation) {
	l := model.Launcher{Row: ev.Row, Col: ev.PlantCol()}
	id := -1
	if r.lives != nil {
		id = len(*r.lives)
		*r.lives = append(*r.lives, Lifetime{ID: id, Launcher: l, PlantTime: ev.AbsoluteTime})
	}
	r.state.add(entry{launcher: l, id: id})
}

func (r *replay) remove(i int, ev model.AbsoluteOperation) {
	e := r.state.removeAt(i)
	if r.lives != nil && e.id >= 0 {
		(*r.lives)[e.id].Removed = true
		(*r.lives)[e.id].RemoveTime = ev.AbsoluteTime
	}
}
