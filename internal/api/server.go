// Package api provides the JSON HTTP facade over the preset evaluator.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/presetter/core"
	"github.com/huangsam/presetter/internal/contract"
)

// Route paths served by the facade.
const (
	ProcessSurveyPath = "/api/process-survey"
	MetricsPath       = "/api/metrics"
	HealthPath        = "/health"
)

const shutdownTimeout = 5 * time.Second

// Server wires the catalog and history store into HTTP handlers.
type Server struct {
	catalog  *core.Catalog
	required []string
	mgr      contract.HistoryManager
	routes   map[string]map[string]http.HandlerFunc
}

// NewServer builds a facade over the catalog. Requests must include every metric in required.
func NewServer(catalog *core.Catalog, required []string, mgr contract.HistoryManager) *Server {
	s := &Server{
		catalog:  catalog,
		required: slices.Clone(required),
		mgr:      mgr,
	}
	s.routes = map[string]map[string]http.HandlerFunc{
		ProcessSurveyPath: {http.MethodPost: s.handleProcessSurvey},
		MetricsPath:       {http.MethodGet: s.handleMetrics},
		HealthPath:        {http.MethodGet: s.handleHealth},
	}
	return s
}

// Handler returns the complete handler chain.
func (s *Server) Handler() http.Handler {
	return withRecover(withCORS(http.HandlerFunc(s.dispatch)))
}

// dispatch resolves the route first and the method second so that
// unknown paths and wrong methods get distinct responses.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	methods, ok := s.routes[r.URL.Path]
	if !ok {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}
	handler, ok := methods[r.Method]
	if !ok {
		allowed := make([]string, 0, len(methods))
		for m := range methods {
			allowed = append(allowed, m)
		}
		slices.Sort(allowed)
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	handler(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	contract.LogInfo("🌐 Serving preset API on http://%s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}
