package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ColumnSet is the set of launcher columns allowed to serve a fire request.
// The zero value allows every column.
type ColumnSet struct {
	cols map[int]struct{}
}

// AllColumns returns a set without restriction.
func AllColumns() ColumnSet { return ColumnSet{} }

// ParseColumnSet parses space separated integers and inclusive "a-b"
// ranges, e.g. "1 3-5". An empty string yields AllColumns.
func ParseColumnSet(s string, maxCol int) (ColumnSet, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return AllColumns(), nil
	}
	set := ColumnSet{cols: make(map[int]struct{})}
	for _, f := range fields {
		lo, hi, err := parseColumnRange(f)
		if err != nil {
			return ColumnSet{}, err
		}
		if lo < 1 || hi > maxCol {
			return ColumnSet{}, fmt.Errorf("column %q outside 1..%d", f, maxCol)
		}
		for c := lo; c <= hi; c++ {
			set.cols[c] = struct{}{}
		}
	}
	return set, nil
}

func parseColumnRange(f string) (int, int, error) {
	a, b, isRange := strings.Cut(f, "-")
	lo, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column %q", f)
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column range %q", f)
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("invalid column range %q", f)
	}
	return lo, hi, nil
}

// Contains reports whether col may be used.
func (s ColumnSet) Contains(col int) bool {
	if s.cols == nil {
		return true
	}
	_, ok := s.cols[col]
	return ok
}

// All reports whether the set is unrestricted.
func (s ColumnSet) All() bool { return s.cols == nil }

// Columns lists the allowed columns in ascending order, nil when unrestricted.
func (s ColumnSet) Columns() []int {
	if s.cols == nil {
		return nil
	}
	out := make([]int, 0, len(s.cols))
	for c := range s.cols {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}
