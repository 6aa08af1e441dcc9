// Package sat is the boolean satisfiability capability used by the
// scheduler.
package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Lit is a DIMACS style literal: v for a variable, -v for its negation.
type Lit int

// Not negates the literal.
func (l Lit) Not() Lit { return -l }

// Solver is an incremental SAT solver. Clauses are permanent; assumptions
// only hold for a single Solve call.
type Solver interface {
	NewVar() Lit
	AddClause(lits ...Lit)
	// AddMutualExclusion forbids a and b from both being true.
	AddMutualExclusion(a, b Lit)
	Solve(assumptions ...Lit) bool
	// Value reads the last satisfying assignment.
	Value(l Lit) bool
}

// Gini is a Solver backed by github.com/go-air/gini.
type Gini struct {
	g     *gini.Gini
	vars  int
	calls int
}

// NewGini returns an empty solver.
func NewGini() *Gini {
	return &Gini{g: gini.New()}
}

func toZ(l Lit) z.Lit { return z.Dimacs2Lit(int(l)) }

// NewVar allocates a fresh variable.
func (s *Gini) NewVar() Lit {
	s.vars++
	return Lit(s.vars)
}

// Vars is the number of allocated variables.
func (s *Gini) Vars() int { return s.vars }

// Calls is the number of Solve invocations.
func (s *Gini) Calls() int { return s.calls }

func (s *Gini) AddClause(lits ...Lit) {
	for _, l := range lits {
		s.g.Add(toZ(l))
	}
	s.g.Add(z.LitNull)
}

func (s *Gini) AddMutualExclusion(a, b Lit) {
	s.AddClause(a.Not(), b.Not())
}

// Solve reports whether the clauses and assumptions are satisfiable.
func (s *Gini) Solve(assumptions ...Lit) bool {
	s.calls++
	if len(assumptions) > 0 {
		ms := make([]z.Lit, len(assumptions))
		for i, l := range assumptions {
			ms[i] = toZ(l)
		}
		s.g.Assume(ms...)
	}
	return s.g.Solve() == 1
}

func (s *Gini) Value(l Lit) bool {
	return s.g.Value(toZ(l))
}
