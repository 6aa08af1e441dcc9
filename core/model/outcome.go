package model

// FireOutcome is the scheduler decision for one fire request.
type FireOutcome struct {
	OriginalIndex int
	Success       bool
	Launcher      Launcher
	FireTime      int
}

// EventOutcome is the simulator decision for one plant or remove.
type EventOutcome struct {
	OriginalIndex int
	Success       bool
	Err           error
}

// NextAvailable is the earliest time a launcher can land its next shot.
type NextAvailable struct {
	Launcher Launcher
	Time     int
}
