// Package solvelog keeps a history of solves so past plans can be
// inspected without re-running them.
package solvelog

import (
	"context"
	"time"

	"github.com/kilianp07/cobreuse/core/report"
)

// LogRecord captures one solve and its report.
type LogRecord struct {
	SolveID    string        `json:"solve_id"`
	Timestamp  time.Time     `json:"timestamp"`
	PlanName   string        `json:"plan_name,omitempty"`
	Waves      int           `json:"waves"`
	Operations int           `json:"operations"`
	Launchers  int           `json:"launchers"`
	Duration   time.Duration `json:"duration"`
	Report     report.Report `json:"report"`
}

// LogQuery defines filters for retrieving records. Zero fields match
// everything.
type LogQuery struct {
	Start   time.Time
	End     time.Time
	SolveID string
}

// Matches reports whether r passes every filter of q.
func (q LogQuery) Matches(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	return q.SolveID == "" || r.SolveID == q.SolveID
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}
