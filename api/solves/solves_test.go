package solves

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cobreuse/core/logger"
	"github.com/kilianp07/cobreuse/core/planner"
	"github.com/kilianp07/cobreuse/core/solvelog"
)

type memStore struct{ recs []solvelog.LogRecord }

func (m *memStore) Append(_ context.Context, r solvelog.LogRecord) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(_ context.Context, q solvelog.LogQuery) ([]solvelog.LogRecord, error) {
	var res []solvelog.LogRecord
	for _, r := range m.recs {
		if q.Matches(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

const singleFire = `{"name":"api","launchers":[{"row":1,"col":1}],"waves":[{"duration":1000,"operations":[{"type":"fire","time":"500","row":1,"targetCol":9}]}]}`

func TestLogHandler_AuthAndFilters(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	require.NoError(t, store.Append(context.Background(), solvelog.LogRecord{SolveID: "a", Timestamp: now}))
	require.NoError(t, store.Append(context.Background(), solvelog.LogRecord{SolveID: "b", Timestamp: now.Add(time.Hour)}))
	h := NewLogHandler(store, "tok")

	req := httptest.NewRequest(http.MethodGet, "/api/solves?id=b", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var out []solvelog.LogRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].SolveID)

	req = httptest.NewRequest(http.MethodGet, "/api/solves?end="+now.Add(time.Minute).Format(time.RFC3339), nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].SolveID)

	// unauthorized
	req = httptest.NewRequest(http.MethodGet, "/api/solves", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogHandler_BadTime(t *testing.T) {
	h := NewLogHandler(&memStore{}, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/solves?start=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogHandler_EmptyIsArray(t *testing.T) {
	h := NewLogHandler(&memStore{}, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/solves", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestSolveHandler(t *testing.T) {
	store := &memStore{}
	p := planner.New(planner.DefaultConfig(), nil, nil)
	p.SetLogStore(store)
	h := NewSolveHandler(p, "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(singleFire)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp SolveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SolveID)
	require.Len(t, resp.Report.Assignments, 1)
	a := resp.Report.Assignments[0]
	assert.True(t, a.Success)
	require.NotNil(t, a.FireTime)
	// column 1 travels 359cs to column 9
	assert.Equal(t, 141, *a.FireTime)

	require.Len(t, store.recs, 1)
	assert.Equal(t, resp.SolveID, store.recs[0].SolveID)
	assert.Equal(t, "api", store.recs[0].PlanName)
}

func TestSolveHandler_Errors(t *testing.T) {
	p := planner.New(planner.DefaultConfig(), nil, nil)
	h := NewSolveHandler(p, "tok")

	cases := []struct {
		name   string
		method string
		body   string
		auth   bool
		want   int
	}{
		{"unauthorized", http.MethodPost, singleFire, false, http.StatusUnauthorized},
		{"method", http.MethodGet, "", true, http.StatusMethodNotAllowed},
		{"malformed", http.MethodPost, `{"waves":`, true, http.StatusBadRequest},
		{"unknown field", http.MethodPost, `{"lawn":1}`, true, http.StatusBadRequest},
		{"invalid plan", http.MethodPost, strings.Replace(singleFire, `"500"`, `"500 +"`, 1), true, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/solve", strings.NewReader(tc.body))
			if tc.auth {
				req.Header.Set("Authorization", "Bearer tok")
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestSolveHandler_ListsEveryInputError(t *testing.T) {
	p := planner.New(planner.DefaultConfig(), nil, nil)
	body := `{"launchers":[{"row":1,"col":1}],"waves":[{"duration":1000,"operations":[` +
		`{"type":"fire","time":"500 +","row":1,"targetCol":9},` +
		`{"type":"fire","time":"500","row":9,"targetCol":9}]}]}`
	rr := httptest.NewRecorder()
	NewSolveHandler(p, "").ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 2)
}

func TestNewMux(t *testing.T) {
	p := planner.New(planner.DefaultConfig(), nil, nil)
	mux := NewMux(p, nil, "")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/solves", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRequireToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := requireToken("tok", ok)
	cases := map[string]int{
		"Bearer tok":  http.StatusNoContent,
		"Bearer tok2": http.StatusUnauthorized,
		"Bearer to":   http.StatusUnauthorized,
		"tok":         http.StatusUnauthorized,
		"":            http.StatusUnauthorized,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, want, rr.Code, header)
	}

	rr := httptest.NewRecorder()
	requireToken("", ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestServeReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan error, 1)
	go func() { done <- Serve(context.Background(), ln.Addr().String(), http.NotFoundHandler(), logger.NopLogger{}) }()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the listener failed")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), logger.NopLogger{}) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
