package solves

import (
	"net/http"
	"time"

	"github.com/kilianp07/cobreuse/core/solvelog"
)

// NewLogHandler returns an HTTP handler exposing the solve log via
// GET /api/solves?start=&end=&id=. Times are RFC3339; malformed values are
// rejected.
func NewLogHandler(store solvelog.LogStore, token string) http.Handler {
	return requireToken(token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := solvelog.LogQuery{SolveID: r.URL.Query().Get("id")}
		for key, dst := range map[string]*time.Time{"start": &q.Start, "end": &q.End} {
			s := r.URL.Query().Get(key)
			if s == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, key+": "+err.Error(), http.StatusBadRequest)
				return
			}
			*dst = t
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []solvelog.LogRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	}))
}
