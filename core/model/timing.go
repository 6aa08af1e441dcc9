package model

// Fixed timings of the cob cannon, in game time units (centiseconds).
const (
	Cooldown        = 3475
	ArmingDelay     = 625
	ImpactMargin    = 204
	ReferenceColumn = 9.0
)

// Timing groups the launcher timings used by the scheduler.
type Timing struct {
	// Cooldown is the minimum distance between two fire times of one launcher.
	Cooldown int
	// ArmingDelay is the time between a plant and the first possible shot.
	ArmingDelay int
	// ImpactMargin is how long before a remove the last shot must leave.
	ImpactMargin int
	// ReferenceColumn is the target used to express next-available times.
	ReferenceColumn float64
}

// DefaultTiming returns the timings of the game.
func DefaultTiming() Timing {
	return Timing{
		Cooldown:        Cooldown,
		ArmingDelay:     ArmingDelay,
		ImpactMargin:    ImpactMargin,
		ReferenceColumn: ReferenceColumn,
	}
}
