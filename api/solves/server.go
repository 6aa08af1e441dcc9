package solves

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/cobreuse/core/logger"
	"github.com/kilianp07/cobreuse/core/planner"
	"github.com/kilianp07/cobreuse/core/solvelog"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr  string `json:"addr"`
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// NewMux routes the solve API and Prometheus metrics. A nil store leaves
// /api/solves unregistered.
func NewMux(p *planner.Planner, store solvelog.LogStore, token string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/solve", NewSolveHandler(p, token))
	if store != nil {
		mux.Handle("/api/solves", NewLogHandler(store, token))
	}
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve runs an HTTP server on addr until ctx is canceled or the listener
// fails. It returns once the server has shut down.
func Serve(ctx context.Context, addr string, h http.Handler, log logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("http server shutdown: %v", err)
		}
	}()
	log.Infof("listening on %s", addr)
	err := srv.ListenAndServe()
	cancel()
	<-stopped
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
