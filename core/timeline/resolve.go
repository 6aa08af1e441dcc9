package timeline

import (
	"sort"

	"github.com/kilianp07/cobreuse/core/logger"
	"github.com/kilianp07/cobreuse/core/model"
)

// WaveStarts returns the absolute start of every wave. Waves are
// concatenated without gaps.
func WaveStarts(waves []model.Wave) []int {
	starts := make([]int, len(waves))
	t := 0
	for i, w := range waves {
		starts[i] = t
		t += w.Duration
	}
	return starts
}

// TotalDuration is the absolute end of the last wave.
func TotalDuration(waves []model.Wave) int {
	total := 0
	for _, w := range waves {
		total += w.Duration
	}
	return total
}

// Resolve places every operation on the absolute timeline and sorts the
// result by absolute time, keeping authoring order for ties. Invalid time
// expressions or column restrictions should have been rejected by
// validation; here they degrade to offset 0 and no restriction.
func Resolve(waves []model.Wave, maxCol int, log logger.Logger) []model.AbsoluteOperation {
	if log == nil {
		log = logger.NopLogger{}
	}
	starts := WaveStarts(waves)
	var ops []model.AbsoluteOperation
	for wi, w := range waves {
		for oi, op := range w.Operations {
			ref := model.OpRef{Wave: wi, Op: oi}
			rel, err := Eval(op.Time, w.Duration)
			if err != nil {
				log.Warnf("%s: time %q: %v, using 0", ref, op.Time, err)
				rel = 0
			}
			eligible := model.AllColumns()
			if op.Type == model.OpFire {
				if eligible, err = model.ParseColumnSet(op.Columns, maxCol); err != nil {
					log.Warnf("%s: columns %q: %v, using all columns", ref, op.Columns, err)
					eligible = model.AllColumns()
				}
			}
			ops = append(ops, model.AbsoluteOperation{
				Operation:    op,
				Ref:          ref,
				AbsoluteTime: starts[wi] + rel,
				Eligible:     eligible,
			})
		}
	}
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].AbsoluteTime < ops[j].AbsoluteTime
	})
	for i := range ops {
		ops[i].OriginalIndex = i
	}
	return ops
}
