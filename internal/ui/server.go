// Package ui provides the web demo for the formula compiler: a playground
// page backed by JSON endpoints for compiling expressions and browsing the
// function reference.
package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapexpr/pkg/formula"
	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

// Server is the demo UI server.
type Server struct {
	compiler *formula.Compiler
	registry *funcs.Registry
	port     int
	logger   *slog.Logger
}

// Config holds configuration for the UI server.
type Config struct {
	Compiler *formula.Compiler
	Registry *funcs.Registry
	Port     int
	Logger   *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		compiler: cfg.Compiler,
		registry: cfg.Registry,
		port:     cfg.Port,
		logger:   logger,
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting demo UI", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
	)
	r.Get("/", s.handleIndex)
	r.Get("/api/compile", s.handleCompile)
	r.Get("/api/functions", s.handleFunctions)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// compileResponse is the JSON shape of /api/compile.
type compileResponse struct {
	Expression string `json:"expression"`
	SQL        string `json:"sql,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	expression := r.URL.Query().Get("expr")
	if expression == "" {
		writeJSON(w, http.StatusBadRequest, compileResponse{Error: "missing expr query parameter"})
		return
	}

	resp := compileResponse{Expression: expression}
	compiled, err := s.compiler.Compile(expression)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	resp.SQL = compiled.ToSQL()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFunctions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Overview())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
