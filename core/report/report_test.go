package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cobreuse/core/model"
	"github.com/kilianp07/cobreuse/core/occupancy"
	"github.com/kilianp07/cobreuse/core/scheduler"
	"github.com/kilianp07/cobreuse/core/timeline"
)

func build(t *testing.T, launchers []model.Launcher, waves []model.Wave) Report {
	t.Helper()
	ops := timeline.Resolve(waves, 8, nil)
	events := occupancy.New(launchers, ops).Outcomes()
	res, err := scheduler.New(scheduler.DefaultConfig(), nil).Schedule(launchers, ops)
	require.NoError(t, err)
	cfg := Config{}
	cfg.SetDefaults()
	return Build(ops, events, res, cfg, model.DefaultTiming())
}

func TestBuildKeepsAuthoringOrder(t *testing.T) {
	waves := []model.Wave{
		{Duration: 3000, Operations: []model.Operation{
			{Type: model.OpFire, Time: "1000", Row: 2, TargetCol: 9},
			{Type: model.OpPlant, Time: "0", Row: 1, TargetCol: 4},
			{Type: model.OpFire, Time: "2000", Row: 2, TargetCol: 9},
		}},
		{Duration: 1000, Operations: []model.Operation{
			{Type: model.OpRemove, Time: "0", Row: 1, TargetCol: 3},
		}},
	}
	rep := build(t, []model.Launcher{{Row: 1, Col: 3}}, waves)

	require.Len(t, rep.Assignments, 4)
	var refs []model.OpRef
	for _, a := range rep.Assignments {
		refs = append(refs, a.Ref())
	}
	assert.Equal(t, []model.OpRef{{Wave: 0, Op: 0}, {Wave: 0, Op: 1}, {Wave: 0, Op: 2}, {Wave: 1, Op: 0}}, refs)

	fire := rep.Assignments[0]
	assert.True(t, fire.Success)
	require.NotNil(t, fire.LauncherRow)
	assert.Equal(t, 1, *fire.LauncherRow)
	assert.Equal(t, 3, *fire.LauncherCol)
	assert.Equal(t, 636, *fire.FireTime)
	assert.Equal(t, 1000, fire.AbsoluteTime)

	plant := rep.Assignments[1]
	assert.False(t, plant.Success)
	assert.Contains(t, plant.Reason, "overlap")
	assert.Nil(t, plant.LauncherRow)

	assert.False(t, rep.Assignments[2].Success)
	assert.Equal(t, ReasonNoLauncher, rep.Assignments[2].Reason)
	assert.Nil(t, rep.Assignments[2].FireTime)

	assert.True(t, rep.Assignments[3].Success)
	assert.Equal(t, 3000, rep.Assignments[3].AbsoluteTime)

	assert.Equal(t, Summary{FiresOK: 1, FiresFailed: 1, PlantsFailed: 1, RemovesOK: 1, Prefix: 1, UpperBound: 1, BoundExact: true}, rep.Summary)
	assert.Empty(t, rep.NextAvailable)
	assert.Equal(t, map[string]int{"1-3": 1}, rep.Usage())
}

func TestBuildPadsNextAvailable(t *testing.T) {
	rep := build(t, []model.Launcher{{Row: 2, Col: 5}, {Row: 1, Col: 3}}, nil)
	assert.Equal(t, []NextAvailable{
		{Position: "1-3", Time: 0},
		{Position: "2-5", Time: 0},
		{Position: "1-3", Time: 3475},
		{Position: "2-5", Time: 3475},
		{Position: "1-3", Time: 6950},
		{Position: "2-5", Time: 6950},
		{Position: "1-3", Time: 10425},
		{Position: "2-5", Time: 10425},
	}, rep.NextAvailable)
	assert.Empty(t, rep.Assignments)
}
