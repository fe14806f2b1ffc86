// Package dashboard serves a small HTTP/JSON debug surface reporting ring
// state: successor list, finger table, predecessor, health, store size
// (spec.md §6.3's optional `web_address`). Grounded on the teacher's
// internal/node/server/http.go HTTPCacheServer (ServeMux + /health + /debug
// JSON handlers), repurposed from web-cache metrics to ring-state
// reflection since this implementation carries no caching layer.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"chorddht/internal/logger"
	"chorddht/internal/node/chord"
)

// Server is the optional ring-state dashboard.
type Server struct {
	node *chord.Node
	port string
	http *http.Server
	lgr  logger.Logger
}

// New builds a dashboard bound to addr (spec.md §6.3 `web_address`).
func New(addr string, node *chord.Node, lgr logger.Logger) *Server {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Server{node: node, port: addr, lgr: lgr}
}

// Start launches the HTTP server and blocks until Stop is called.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/debug", s.handleDebug)

	s.http = &http.Server{
		Addr:         s.port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.lgr.Info("dashboard: starting", logger.F("addr", s.port))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts the dashboard down.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthy := s.node.Health()
	resp := map[string]any{
		"healthy": healthy,
		"self":    s.node.Self().Addr,
	}
	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	self := s.node.Self()

	resp := map[string]any{
		"self": map[string]string{"id": self.ID.ToHex(), "addr": self.Addr},
		"store_len": s.node.StoreLen(),
		"fingers":   s.node.FingerSnapshot(),
	}

	if pred, ok := s.node.Predecessor(); ok {
		resp["predecessor"] = map[string]string{"id": pred.ID.ToHex(), "addr": pred.Addr}
	} else {
		resp["predecessor"] = nil
	}

	succs := s.node.SuccessorList()
	successors := make([]map[string]string, 0, len(succs))
	for _, n := range succs {
		successors = append(successors, map[string]string{"id": n.ID.ToHex(), "addr": n.Addr})
	}
	resp["successors"] = successors

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
