package model

import "fmt"

// Launcher is a cob cannon position on the lawn. A launcher occupies its
// column and the column to its right.
type Launcher struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the position as "row-col".
func (l Launcher) String() string {
	return fmt.Sprintf("%d-%d", l.Row, l.Col)
}

// Overlaps reports whether a launcher at (row, col) would share a cell with l.
func (l Launcher) Overlaps(row, col int) bool {
	if l.Row != row {
		return false
	}
	d := l.Col - col
	return d > -2 && d < 2
}

// Lawn describes the grid launchers and targets live on.
type Lawn struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// DefaultLawn is the six row pool lawn.
var DefaultLawn = Lawn{Rows: 6, Columns: 9}

// MaxLauncherCol is the right-most column a launcher can be placed in.
func (l Lawn) MaxLauncherCol() int { return l.Columns - 1 }

// MaxTargetCol is the right-most column a shot can be aimed at.
func (l Lawn) MaxTargetCol() float64 { return float64(l.Columns) + 7.0/8.0 }
