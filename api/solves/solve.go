package solves

import (
	"errors"
	"net/http"

	"github.com/kilianp07/cobreuse/core/model"
	"github.com/kilianp07/cobreuse/core/planner"
	"github.com/kilianp07/cobreuse/core/report"
	"github.com/kilianp07/cobreuse/pkg/planfile"
)

// maxPlanBytes bounds request bodies accepted by the solve handler.
const maxPlanBytes = 4 << 20

// SolveResponse is the body returned by POST /api/solve.
type SolveResponse struct {
	SolveID string        `json:"solveId"`
	Report  report.Report `json:"report"`
}

// ErrorResponse lists the input errors of a rejected plan.
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

// NewSolveHandler returns a handler solving the JSON plan posted to it.
func NewSolveHandler(p *planner.Planner, token string) http.Handler {
	return requireToken(token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		plan, err := planfile.Decode(http.MaxBytesReader(w, r.Body, maxPlanBytes), "json")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Errors: []string{err.Error()}})
			return
		}
		out, err := p.Solve(r.Context(), plan)
		if err != nil {
			var inErr *model.InputError
			if errors.As(err, &inErr) {
				writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Errors: unjoin(err)})
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, SolveResponse{SolveID: out.SolveID, Report: out.Report})
	}))
}

// unjoin splits an errors.Join result into its messages.
func unjoin(err error) []string {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var msgs []string
		for _, e := range j.Unwrap() {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}
