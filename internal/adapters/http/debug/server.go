// Package debug exposes the pipeline's metrics and health over a small HTTP
// listener.
package debug

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cmsperf/topreco/pkg/logger"
	"github.com/cmsperf/topreco/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server serves /metrics and /healthz.
type Server struct {
	srv   *http.Server
	runID string
	log   logger.Logger
}

// NewServer creates a debug server bound to addr.
func NewServer(addr, runID string) *Server {
	s := &Server{runID: runID, log: logger.Named("debug-http")}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start runs the listener until the context is cancelled.
func (s *Server) Start(ctx context.Context) {
	go func() {
		s.log.Info(ctx, "debug listener up", logger.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(ctx, "debug listener failed", logger.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()
}

// Handler returns the server's handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"run_id": s.runID,
	})
}
