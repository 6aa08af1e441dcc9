package model

import (
	"errors"
	"fmt"
	"math"
)

// InputError describes a malformed part of a plan. It blocks the solve.
type InputError struct {
	// Ref is nil for errors on the launcher list or the plan itself.
	Ref    *OpRef
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Ref == nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Ref, e.Field, e.Reason)
}

// Limits bounds the size of a plan accepted for solving.
type Limits struct {
	MaxWaves      int `json:"max_waves"`
	MaxOperations int `json:"max_operations"`
	MaxLaunchers  int `json:"max_launchers"`
}

// SetDefaults applies sane defaults.
func (l *Limits) SetDefaults() {
	if l.MaxWaves <= 0 {
		l.MaxWaves = 200
	}
	if l.MaxOperations <= 0 {
		l.MaxOperations = 2000
	}
	if l.MaxLaunchers <= 0 {
		l.MaxLaunchers = 48
	}
}

// ExprChecker validates a time expression. It is provided by the timeline
// package to keep the model free of parsing code.
type ExprChecker func(expr string) error

// Validate checks the plan against the lawn and limits. All problems are
// reported, joined with errors.Join; each is an *InputError.
//
//gocyclo:ignore
func (p Plan) Validate(lawn Lawn, limits Limits, checkExpr ExprChecker) error {
	var errs []error
	add := func(ref *OpRef, field, format string, args ...any) {
		errs = append(errs, &InputError{Ref: ref, Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if len(p.Launchers) > limits.MaxLaunchers {
		add(nil, "launchers", "%d launchers exceed the limit of %d", len(p.Launchers), limits.MaxLaunchers)
	}
	if len(p.Waves) > limits.MaxWaves {
		add(nil, "waves", "%d waves exceed the limit of %d", len(p.Waves), limits.MaxWaves)
	}
	for i, l := range p.Launchers {
		field := fmt.Sprintf("launchers[%d]", i)
		if l.Row < 1 || l.Row > lawn.Rows {
			add(nil, field, "row %d outside 1..%d", l.Row, lawn.Rows)
		}
		if l.Col < 1 || l.Col > lawn.MaxLauncherCol() {
			add(nil, field, "column %d outside 1..%d", l.Col, lawn.MaxLauncherCol())
		}
		for j := 0; j < i; j++ {
			if p.Launchers[j].Overlaps(l.Row, l.Col) {
				add(nil, field, "overlaps launcher %s", p.Launchers[j])
			}
		}
	}

	total := 0
	for wi, w := range p.Waves {
		if w.Duration <= 0 {
			add(nil, fmt.Sprintf("waves[%d].duration", wi), "must be positive, got %d", w.Duration)
		}
		total += len(w.Operations)
		for oi, op := range w.Operations {
			ref := &OpRef{Wave: wi, Op: oi}
			if op.Type < OpFire || op.Type > OpRemove {
				add(ref, "type", "unknown operation type %d", int(op.Type))
				continue
			}
			if checkExpr != nil {
				if err := checkExpr(op.Time); err != nil {
					add(ref, "time", "%v", err)
				}
			}
			if op.Row < 1 || op.Row > lawn.Rows {
				add(ref, "row", "row %d outside 1..%d", op.Row, lawn.Rows)
			}
			switch op.Type {
			case OpFire:
				validateTarget(ref, op, lawn, add)
			default:
				if op.TargetCol != math.Trunc(op.TargetCol) || op.TargetCol < 1 || op.TargetCol > float64(lawn.MaxLauncherCol()) {
					add(ref, "targetCol", "column %v must be an integer in 1..%d", op.TargetCol, lawn.MaxLauncherCol())
				}
				if op.Columns != "" {
					add(ref, "columns", "only fire operations accept a column restriction")
				}
			}
		}
	}
	if total > limits.MaxOperations {
		add(nil, "operations", "%d operations exceed the limit of %d", total, limits.MaxOperations)
	}
	return errors.Join(errs...)
}

func validateTarget(ref *OpRef, op Operation, lawn Lawn, add func(*OpRef, string, string, ...any)) {
	if math.IsNaN(op.TargetCol) || op.TargetCol < 0 || op.TargetCol > lawn.MaxTargetCol() {
		add(ref, "targetCol", "column %v outside 0..%v", op.TargetCol, lawn.MaxTargetCol())
		return
	}
	scaled := op.TargetCol * 80
	if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		add(ref, "targetCol", "column %v is not a multiple of 1/80", op.TargetCol)
	}
	if _, err := ParseColumnSet(op.Columns, lawn.MaxLauncherCol()); err != nil {
		add(ref, "columns", "%v", err)
	}
}
