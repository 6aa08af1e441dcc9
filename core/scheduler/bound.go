package scheduler

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// rowsPerVariable caps the relaxation size relative to MaxVariables since
// the dense constraint matrix grows with the number of exclusion pairs.
const rowsPerVariable = 4

// lpSolve points to the simplex used by the bound. It can be overridden in
// tests.
var lpSolve = solveLP

// solveLP maximizes the sum of n variables subject to g·x <= 1 and x >= 0.
// Every row gets a slack column so the slacks form a feasible starting basis.
func solveLP(g [][]float64, n int) (float64, error) {
	m := len(g)
	c := make([]float64, n+m)
	for i := 0; i < n; i++ {
		c[i] = -1
	}
	a := mat.NewDense(m, n+m, nil)
	b := make([]float64, m)
	basic := make([]int, m)
	for r, row := range g {
		for j, v := range row {
			a.Set(r, j, v)
		}
		a.Set(r, n+r, 1)
		b[r] = 1
		basic[r] = n + r
	}
	opt, _, err := lp.Simplex(c, a, b, 1e-10, basic)
	if err != nil {
		return 0, err
	}
	return -opt, nil
}

// upperBound returns the LP relaxation optimum of the full request set and
// whether it was computed. Requests without candidates contribute nothing.
func (s *Scheduler) upperBound(reqs []request, cands []candidate, pairs [][2]int) (float64, bool) {
	trivial := float64(withCandidates(reqs))
	n := len(cands)
	if n == 0 {
		return 0, true
	}
	rows := withCandidates(reqs) + len(pairs)
	if n > s.cfg.Bound.MaxVariables || rows > rowsPerVariable*s.cfg.Bound.MaxVariables {
		s.log.Debugf("bound skipped: %d variables, %d rows", n, rows)
		return trivial, false
	}
	g := make([][]float64, 0, rows)
	for _, r := range reqs {
		if len(r.cands) == 0 {
			continue
		}
		row := make([]float64, n)
		for _, ci := range r.cands {
			row[ci] = 1
		}
		g = append(g, row)
	}
	for _, p := range pairs {
		row := make([]float64, n)
		row[p[0]], row[p[1]] = 1, 1
		g = append(g, row)
	}
	bound, err := lpSolve(g, n)
	if err != nil {
		s.log.Warnf("bound relaxation failed: %v", err)
		return trivial, false
	}
	return bound, true
}
