// Package occupancy replays plant and remove events to find which
// launchers exist at any point of the timeline.
package occupancy

import (
	"errors"
	"fmt"

	"github.com/kilianp07/cobreuse/core/model"
)

var (
	// ErrOverlap is returned when a plant would share a cell with an
	// existing launcher.
	ErrOverlap = errors.New("overlaps an existing launcher")
	// ErrNotFound is returned when a remove targets an empty position.
	ErrNotFound = errors.New("no launcher at position")
)

type entry struct {
	launcher model.Launcher
	// id indexes the recorded lifetimes, -1 when none are recorded.
	id int
}

// State is the set of launchers existing at one instant. It is a value:
// copies never share storage.
type State struct {
	entries []entry
}

func newState(initial []model.Launcher) State {
	s := State{entries: make([]entry, len(initial))}
	for i, l := range initial {
		s.entries[i] = entry{launcher: l, id: i}
	}
	return s
}

// Launchers lists the existing launcher positions.
func (s State) Launchers() []model.Launcher {
	out := make([]model.Launcher, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.launcher
	}
	return out
}

func (s State) clone() State {
	return State{entries: append([]entry(nil), s.entries...)}
}

// Has reports whether a launcher sits exactly at (row, col).
func (s State) Has(row, col int) bool { return s.find(row, col) >= 0 }

func (s State) find(row, col int) int {
	for i, e := range s.entries {
		if e.launcher.Row == row && e.launcher.Col == col {
			return i
		}
	}
	return -1
}

func (s State) overlapping(row, col int) (model.Launcher, bool) {
	for _, e := range s.entries {
		if e.launcher.Overlaps(row, col) {
			return e.launcher, true
		}
	}
	return model.Launcher{}, false
}

func (s *State) add(e entry) {
	s.entries = append(s.entries, e)
}

func (s *State) removeAt(i int) entry {
	e := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return e
}

// ValidatePlant fails with ErrOverlap when a launcher in the same row is
// less than two columns away.
func ValidatePlant(s State, row, col int) error {
	if l, ok := s.overlapping(row, col); ok {
		return fmt.Errorf("%w %s", ErrOverlap, l)
	}
	return nil
}

// ValidateRemove fails with ErrNotFound unless a launcher sits exactly at
// (row, col).
func ValidateRemove(s State, row, col int) error {
	if !s.Has(row, col) {
		return fmt.Errorf("%w %d-%d", ErrNotFound, row, col)
	}
	return nil
}
