package scheduler

import (
	"sort"

	"github.com/kilianp07/cobreuse/core/model"
)

// PadNextAvailable repeats the entries of list, each round adding one more
// cooldown to their times, until it holds at least min entries. The result
// is sorted by time, then by position. An empty list stays empty.
func PadNextAvailable(list []model.NextAvailable, min, cooldown int) []model.NextAvailable {
	out := make([]model.NextAvailable, 0, max(len(list), min))
	out = append(out, list...)
	if len(list) > 0 {
		for round := 1; len(out) < min; round++ {
			for _, na := range list {
				if len(out) >= min {
					break
				}
				out = append(out, model.NextAvailable{Launcher: na.Launcher, Time: na.Time + round*cooldown})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].Launcher.String() < out[j].Launcher.String()
	})
	return out
}
