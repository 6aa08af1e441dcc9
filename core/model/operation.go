package model

import (
	"fmt"
	"strings"
)

// OpType identifies what an operation asks for.
type OpType int

const (
	OpFire OpType = iota
	OpPlant
	OpRemove
)

// String returns the lower-case name used in plan files.
func (t OpType) String() string {
	switch t {
	case OpFire:
		return "fire"
	case OpPlant:
		return "plant"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ParseOpType converts a plan file name into an OpType.
func ParseOpType(s string) (OpType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fire":
		return OpFire, nil
	case "plant":
		return OpPlant, nil
	case "remove":
		return OpRemove, nil
	default:
		return 0, fmt.Errorf("unknown operation type %q", s)
	}
}

func (t OpType) MarshalText() ([]byte, error) {
	if t < OpFire || t > OpRemove {
		return nil, fmt.Errorf("unknown operation type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *OpType) UnmarshalText(b []byte) error {
	v, err := ParseOpType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Operation is one authored request inside a wave. Time is an expression
// relative to the start of the wave.
type Operation struct {
	Type      OpType  `json:"type" yaml:"type"`
	Time      string  `json:"time" yaml:"time"`
	Row       int     `json:"row" yaml:"row"`
	TargetCol float64 `json:"targetCol" yaml:"targetCol"`
	// Columns restricts which launcher columns may serve a fire request.
	Columns string `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Wave is a contiguous segment of the timeline.
type Wave struct {
	Duration   int         `json:"duration" yaml:"duration"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Plan is the full scheduler input.
type Plan struct {
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Launchers []Launcher `json:"launchers" yaml:"launchers"`
	Waves     []Wave     `json:"waves" yaml:"waves"`
}

// OpRef identifies an operation by its authored position.
type OpRef struct {
	Wave int `json:"waveIndex"`
	Op   int `json:"opIndex"`
}

func (r OpRef) String() string {
	return fmt.Sprintf("wave %d op %d", r.Wave+1, r.Op+1)
}

// Less orders references by authoring order.
func (r OpRef) Less(o OpRef) bool {
	if r.Wave != o.Wave {
		return r.Wave < o.Wave
	}
	return r.Op < o.Op
}

// AbsoluteOperation is an operation placed on the global timeline. Values
// are created once per solve and never modified.
type AbsoluteOperation struct {
	Operation
	Ref          OpRef
	AbsoluteTime int
	// OriginalIndex is the position in the time sorted sequence.
	OriginalIndex int
	Eligible      ColumnSet
}

// PlantCol returns the launcher column addressed by a plant or remove.
func (o AbsoluteOperation) PlantCol() int {
	return int(o.TargetCol)
}
