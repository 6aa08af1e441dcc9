// Package travel models how long a cob takes from launch to impact.
package travel

import (
	"errors"
	"fmt"
	"math"
)

// PixelsPerColumn converts a target column into drop pixels.
const PixelsPerColumn = 80

// ErrColumnOutOfDomain is returned for launcher columns the calibration
// table does not cover. Validated input never triggers it.
var ErrColumnOutOfDomain = errors.New("launcher column outside travel table")

type calibration struct {
	minDrop int
	base    int
}

// table is indexed by launcher column - 1.
var table = [...]calibration{
	{515, 359},
	{499, 362},
	{515, 364},
	{499, 367},
	{515, 369},
	{499, 372},
	{511, 373},
	{511, 373},
}

// MaxLauncherCol is the highest launcher column in the table.
const MaxLauncherCol = len(table)

// Time returns the travel time of a cob fired from launcherCol and aimed at
// targetCol. Short drops land earlier by one unit per 32 pixels.
func Time(launcherCol int, targetCol float64) (int, error) {
	if launcherCol < 1 || launcherCol > MaxLauncherCol {
		return 0, fmt.Errorf("%w: %d", ErrColumnOutOfDomain, launcherCol)
	}
	c := table[launcherCol-1]
	// Targets are multiples of 1/80; the epsilon keeps k/80*80 from
	// flooring to k-1.
	drop := int(math.Floor(targetCol*PixelsPerColumn + 1e-6))
	if drop >= c.minDrop {
		return c.base, nil
	}
	// Go's integer division truncates toward zero, which is what the game does.
	return c.base + 1 - (drop-(c.minDrop-1))/32, nil
}

// MustTime is like Time but panics on a column outside the table.
func MustTime(launcherCol int, targetCol float64) int {
	t, err := Time(launcherCol, targetCol)
	if err != nil {
		panic(err)
	}
	return t
}
