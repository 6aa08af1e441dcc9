// Package report merges simulator and scheduler outcomes back into the
// order operations were authored in.
package report

import (
	"sort"

	"github.com/kilianp07/cobreuse/core/model"
	"github.com/kilianp07/cobreuse/core/scheduler"
)

// Config controls report rendering.
type Config struct {
	// MinNextAvailable pads the next-available list to at least this many entries.
	MinNextAvailable int `json:"min_next_available"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.MinNextAvailable <= 0 {
		c.MinNextAvailable = 8
	}
}

// Assignment is the outcome of one authored operation.
type Assignment struct {
	WaveIndex    int          `json:"waveIndex"`
	OpIndex      int          `json:"opIndex"`
	Type         model.OpType `json:"type"`
	Success      bool         `json:"success"`
	LauncherRow  *int         `json:"launcherRow,omitempty"`
	LauncherCol  *int         `json:"launcherCol,omitempty"`
	FireTime     *int         `json:"fireTime,omitempty"`
	AbsoluteTime int          `json:"absoluteTime"`
	Reason       string       `json:"reason,omitempty"`
}

// Ref returns the authored position of the operation.
func (a Assignment) Ref() model.OpRef { return model.OpRef{Wave: a.WaveIndex, Op: a.OpIndex} }

// NextAvailable is a launcher position and the earliest time it lands a shot again.
type NextAvailable struct {
	Position string `json:"position"`
	Time     int    `json:"time"`
}

// Summary counts outcomes per operation type.
type Summary struct {
	FiresOK       int     `json:"firesOk"`
	FiresFailed   int     `json:"firesFailed"`
	PlantsOK      int     `json:"plantsOk"`
	PlantsFailed  int     `json:"plantsFailed"`
	RemovesOK     int     `json:"removesOk"`
	RemovesFailed int     `json:"removesFailed"`
	Prefix        int     `json:"prefix"`
	UpperBound    float64 `json:"upperBound"`
	BoundExact    bool    `json:"boundExact"`
}

// Report is the result of one solve.
type Report struct {
	Assignments   []Assignment    `json:"assignments"`
	NextAvailable []NextAvailable `json:"nextAvailable"`
	Summary       Summary         `json:"summary"`
}

// ReasonNoLauncher explains fire requests the scheduler could not serve.
const ReasonNoLauncher = "no launcher available"

// Build merges the plant/remove outcomes in events and the fire outcomes of
// res into one assignment per operation of ops, ordered by wave then
// operation index.
func Build(ops []model.AbsoluteOperation, events []model.EventOutcome, res scheduler.Result, cfg Config, timing model.Timing) Report {
	fires := make(map[int]model.FireOutcome, len(res.Fires))
	for _, f := range res.Fires {
		fires[f.OriginalIndex] = f
	}
	evs := make(map[int]model.EventOutcome, len(events))
	for _, e := range events {
		evs[e.OriginalIndex] = e
	}

	rep := Report{Assignments: make([]Assignment, 0, len(ops))}
	sum := &rep.Summary
	for _, op := range ops {
		a := Assignment{
			WaveIndex:    op.Ref.Wave,
			OpIndex:      op.Ref.Op,
			Type:         op.Type,
			AbsoluteTime: op.AbsoluteTime,
		}
		switch op.Type {
		case model.OpFire:
			f := fires[op.OriginalIndex]
			a.Success = f.Success
			if f.Success {
				row, col, ft := f.Launcher.Row, f.Launcher.Col, f.FireTime
				a.LauncherRow, a.LauncherCol, a.FireTime = &row, &col, &ft
				sum.FiresOK++
			} else {
				a.Reason = ReasonNoLauncher
				sum.FiresFailed++
			}
		case model.OpPlant, model.OpRemove:
			e := evs[op.OriginalIndex]
			a.Success = e.Success
			if e.Err != nil {
				a.Reason = e.Err.Error()
			}
			count(sum, op.Type, e.Success)
		}
		rep.Assignments = append(rep.Assignments, a)
	}
	sort.SliceStable(rep.Assignments, func(i, j int) bool {
		return rep.Assignments[i].Ref().Less(rep.Assignments[j].Ref())
	})

	padded := scheduler.PadNextAvailable(res.NextAvailable, cfg.MinNextAvailable, timing.Cooldown)
	rep.NextAvailable = make([]NextAvailable, len(padded))
	for i, na := range padded {
		rep.NextAvailable[i] = NextAvailable{Position: na.Launcher.String(), Time: na.Time}
	}
	sum.Prefix = res.Prefix
	sum.UpperBound = res.UpperBound
	sum.BoundExact = res.BoundExact
	return rep
}

func count(sum *Summary, t model.OpType, ok bool) {
	switch {
	case t == model.OpPlant && ok:
		sum.PlantsOK++
	case t == model.OpPlant:
		sum.PlantsFailed++
	case ok:
		sum.RemovesOK++
	default:
		sum.RemovesFailed++
	}
}

// Usage returns the number of successful shots per launcher position.
func (r Report) Usage() map[string]int {
	usage := make(map[string]int)
	for _, a := range r.Assignments {
		if a.Type != model.OpFire || !a.Success {
			continue
		}
		usage[model.Launcher{Row: *a.LauncherRow, Col: *a.LauncherCol}.String()]++
	}
	return usage
}
