package model

import "testing"

func TestLauncherOverlaps(t *testing.T) {
	l := Launcher{Row: 2, Col: 4}
	cases := []struct {
		row, col int
		want     bool
	}{
		{2, 4, true},
		{2, 3, true},
		{2, 5, true},
		{2, 2, false},
		{2, 6, false},
		{1, 4, false},
	}
	for _, c := range cases {
		if got := l.Overlaps(c.row, c.col); got != c.want {
			t.Errorf("overlaps(%d,%d)=%v want %v", c.row, c.col, got, c.want)
		}
	}
}

func TestLauncherString(t *testing.T) {
	if s := (Launcher{Row: 3, Col: 7}).String(); s != "3-7" {
		t.Fatalf("unexpected position %q", s)
	}
}

func TestLawnBounds(t *testing.T) {
	if DefaultLawn.MaxLauncherCol() != 8 {
		t.Fatalf("expected 8 got %d", DefaultLawn.MaxLauncherCol())
	}
	if DefaultLawn.MaxTargetCol() != 9.875 {
		t.Fatalf("expected 9.875 got %v", DefaultLawn.MaxTargetCol())
	}
}
