// Package api serves the JSON HTTP surface and mounts the MCP handler
// when the server runs in http mode.
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"esmcp/config"
	"esmcp/executor"
	"esmcp/heartbeat"
	"esmcp/model"
)

type Server struct {
	fileCfg    *config.FileConfig
	cfg        *config.Config
	exec       executor.Executor
	heartbeat  *heartbeat.Heartbeat
	log        *slog.Logger
	httpServer *http.Server
}

type Deps struct {
	FileConfig *config.FileConfig
	Config     *config.Config
	Executor   executor.Executor
	Heartbeat  *heartbeat.Heartbeat
	MCPHandler http.Handler
	Logger     *slog.Logger
}

func NewServer(deps Deps) *Server {
	s := &Server{
		fileCfg:   deps.FileConfig,
		cfg:       deps.Config,
		exec:      deps.Executor,
		heartbeat: deps.Heartbeat,
		log:       deps.Logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/count", s.handleCount)
	mux.HandleFunc("POST /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/details", s.handleDetails)

	mux.HandleFunc("GET /health", s.handleHealth)

	if deps.MCPHandler != nil {
		mux.Handle("/mcp", deps.MCPHandler)
	}

	s.httpServer = &http.Server{
		Addr:         s.fileCfg.Server.Listen,
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.log.Info("HTTP server starting", "listen", s.fileCfg.Server.Listen)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(rw, r)
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Error: model.ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: genRequestID(),
		},
	})
}

func genRequestID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
