package occupancy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cobreuse/core/model"
)

// ops builds time sorted absolute operations; authoring order is slice order.
func ops(list ...model.AbsoluteOperation) []model.AbsoluteOperation {
	for i := range list {
		list[i].OriginalIndex = i
		list[i].Ref = model.OpRef{Op: i}
	}
	return list
}

func plant(t, row, col int) model.AbsoluteOperation {
	return model.AbsoluteOperation{Operation: model.Operation{Type: model.OpPlant, Row: row, TargetCol: float64(col)}, AbsoluteTime: t}
}

func remove(t, row, col int) model.AbsoluteOperation {
	return model.AbsoluteOperation{Operation: model.Operation{Type: model.OpRemove, Row: row, TargetCol: float64(col)}, AbsoluteTime: t}
}

func fire(t int) model.AbsoluteOperation {
	return model.AbsoluteOperation{Operation: model.Operation{Type: model.OpFire, Row: 1, TargetCol: 9}, AbsoluteTime: t}
}

func successes(out []model.EventOutcome) []bool {
	res := make([]bool, len(out))
	for i, o := range out {
		res[i] = o.Success
	}
	return res
}

func TestValidatePlantOverlap(t *testing.T) {
	st := newState([]model.Launcher{{Row: 1, Col: 3}})
	for _, col := range []int{2, 3, 4} {
		err := ValidatePlant(st, 1, col)
		assert.True(t, errors.Is(err, ErrOverlap), "col %d", col)
	}
	assert.NoError(t, ValidatePlant(st, 1, 1))
	assert.NoError(t, ValidatePlant(st, 1, 5))
	assert.NoError(t, ValidatePlant(st, 2, 3))
}

func TestValidateRemoveNotFound(t *testing.T) {
	st := newState([]model.Launcher{{Row: 1, Col: 3}})
	assert.NoError(t, ValidateRemove(st, 1, 3))
	assert.True(t, errors.Is(ValidateRemove(st, 1, 4), ErrNotFound))
	assert.True(t, errors.Is(ValidateRemove(st, 2, 3), ErrNotFound))
}

func TestOutcomesSequential(t *testing.T) {
	sim := New([]model.Launcher{{Row: 1, Col: 1}}, ops(
		plant(0, 1, 2),  // overlaps 1-1
		plant(10, 1, 3), // ok
		fire(20),
		remove(30, 1, 5), // nothing there
		remove(40, 1, 3), // ok
		remove(50, 1, 3), // already gone
		plant(60, 1, 3),  // free again
	))
	out := sim.Outcomes()
	require.Len(t, out, 6)
	assert.Equal(t, []bool{false, true, false, true, false, true}, successes(out))
	assert.True(t, errors.Is(out[0].Err, ErrOverlap))
	assert.True(t, errors.Is(out[2].Err, ErrNotFound))
	// fire operations are not events
	assert.Equal(t, 3, out[2].OriginalIndex)
}

func TestRemoveBeforePlantAtSameInstant(t *testing.T) {
	// plant authored first still sees the same-time remove as done
	sim := New([]model.Launcher{{Row: 1, Col: 3}}, ops(
		plant(100, 1, 3),
		remove(100, 1, 3),
	))
	assert.Equal(t, []bool{true, true}, successes(sim.Outcomes()))

	lives := sim.Lifetimes()
	require.Len(t, lives, 2)
	assert.True(t, lives[0].Removed)
	assert.Equal(t, 100, lives[0].RemoveTime)
	assert.False(t, lives[1].Removed)
	assert.Equal(t, 100, lives[1].PlantTime)
}

func TestRemoveCursorKeepsAuthoringOrder(t *testing.T) {
	// remove authored before the plant at the same instant finds nothing
	sim := New(nil, ops(
		remove(100, 1, 3),
		plant(100, 1, 3),
	))
	assert.Equal(t, []bool{false, true}, successes(sim.Outcomes()))
	lives := sim.Lifetimes()
	require.Len(t, lives, 1)
	assert.False(t, lives[0].Removed)

	// remove authored after the plant removes the fresh launcher
	sim = New(nil, ops(
		plant(100, 1, 3),
		remove(100, 1, 3),
	))
	assert.Equal(t, []bool{true, true}, successes(sim.Outcomes()))
	lives = sim.Lifetimes()
	require.Len(t, lives, 1)
	assert.True(t, lives[0].Removed)
}

func TestStateBeforeIsIndependent(t *testing.T) {
	sim := New([]model.Launcher{{Row: 2, Col: 5}}, ops(
		plant(0, 1, 1),
		remove(10, 2, 5),
	))
	a := sim.StateBefore(1)
	assert.Len(t, a.Launchers(), 2)
	b := sim.StateBefore(1)
	b.removeAt(0)
	assert.Len(t, a.Launchers(), 2)
	assert.Len(t, sim.StateBefore(1).Launchers(), 2)
	assert.Equal(t, []model.Launcher{{Row: 1, Col: 1}}, sim.Final().Launchers())
}

// alive lists the launchers whose instance was never removed.
func alive(lives []Lifetime) []model.Launcher {
	var out []model.Launcher
	for _, l := range lives {
		if !l.Removed {
			out = append(out, l.Launcher)
		}
	}
	return out
}

func TestOutcomesAndLifetimesAgreeAtSameInstant(t *testing.T) {
	// the plant sees 1-4 removed; the last remove replays in authoring
	// order, where the plant still overlaps 1-4, and finds nothing
	sim := New([]model.Launcher{{Row: 1, Col: 4}}, ops(
		plant(0, 1, 3),
		remove(0, 1, 4),
		remove(0, 1, 3),
	))
	out := sim.Outcomes()
	assert.Equal(t, []bool{true, true, false}, successes(out))
	assert.True(t, errors.Is(out[2].Err, ErrNotFound))

	lives := sim.Lifetimes()
	require.Len(t, lives, 2)
	assert.True(t, lives[0].Removed)
	assert.Equal(t, model.Launcher{Row: 1, Col: 3}, lives[1].Launcher)
	assert.False(t, lives[1].Removed)
	assert.Equal(t, []model.Launcher{{Row: 1, Col: 3}}, sim.Final().Launchers())
	assert.Equal(t, sim.Final().Launchers(), alive(lives))
}

func TestLaterEventsSeeCommittedGroup(t *testing.T) {
	sim := New([]model.Launcher{{Row: 1, Col: 4}}, ops(
		plant(0, 1, 3),
		remove(0, 1, 4),
		remove(0, 1, 3),
		remove(50, 1, 3), // the instance planted at 0 is still there
		plant(60, 1, 4),  // free once 1-3 is gone
	))
	assert.Equal(t, []bool{true, true, false, true, true}, successes(sim.Outcomes()))
	for i := range sim.Events() {
		assert.Equal(t, sim.Outcomes()[i].Success, sim.Validate(i) == nil, "event %d", i)
	}
	lives := sim.Lifetimes()
	require.Len(t, lives, 3)
	assert.Equal(t, 50, lives[1].RemoveTime)
	assert.Equal(t, []model.Launcher{{Row: 1, Col: 4}}, alive(lives))
	assert.Equal(t, alive(lives), sim.Final().Launchers())
}

func TestLifetimeWindow(t *testing.T) {
	tm := model.DefaultTiming()
	initial := Lifetime{Initial: true}
	from, until := initial.Window(tm)
	assert.Equal(t, math.MinInt, from)
	assert.Equal(t, math.MaxInt, until)

	planted := Lifetime{PlantTime: 1000, Removed: true, RemoveTime: 5000}
	from, until = planted.Window(tm)
	assert.Equal(t, 1625, from)
	assert.Equal(t, 4796, until)
	assert.True(t, planted.CanFire(1625, tm))
	assert.True(t, planted.CanFire(4796, tm))
	assert.False(t, planted.CanFire(1624, tm))
	assert.False(t, planted.CanFire(4797, tm))
}

func TestLifetimesReplant(t *testing.T) {
	sim := New(nil, ops(
		plant(0, 3, 4),
		remove(500, 3, 4),
		plant(600, 3, 4),
	))
	lives := sim.Lifetimes()
	require.Len(t, lives, 2)
	assert.Equal(t, model.Launcher{Row: 3, Col: 4}, lives[0].Launcher)
	assert.True(t, lives[0].Removed)
	assert.Equal(t, 500, lives[0].RemoveTime)
	assert.Equal(t, 600, lives[1].PlantTime)
	assert.Equal(t, 1, lives[1].ID)
}
