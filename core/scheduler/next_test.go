package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/cobreuse/core/model"
)

func TestPadNextAvailable(t *testing.T) {
	a := model.Launcher{Row: 1, Col: 3}
	b := model.Launcher{Row: 2, Col: 5}
	list := []model.NextAvailable{{Launcher: a, Time: 100}, {Launcher: b, Time: 50}}

	got := PadNextAvailable(list, 5, 10)
	assert.Equal(t, []model.NextAvailable{
		{Launcher: b, Time: 50},
		{Launcher: b, Time: 60},
		{Launcher: a, Time: 100},
		{Launcher: a, Time: 110},
		{Launcher: a, Time: 120},
	}, got)
	assert.Equal(t, 100, list[0].Time)
}

func TestPadNextAvailableSortsTiesByPosition(t *testing.T) {
	a := model.Launcher{Row: 3, Col: 1}
	b := model.Launcher{Row: 1, Col: 7}
	got := PadNextAvailable([]model.NextAvailable{{Launcher: a}, {Launcher: b}}, 1, 3475)
	assert.Equal(t, []model.NextAvailable{{Launcher: b}, {Launcher: a}}, got)
}

func TestPadNextAvailableEmpty(t *testing.T) {
	assert.Empty(t, PadNextAvailable(nil, 8, 3475))
}
