// internal/api/server.go
package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autoremind-core/internal/common/config"
	"autoremind-core/internal/common/logger"
)

// Server wires the preference routes, health probe and metrics endpoint
// into one http.Server.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func NewServer(cfg config.ServerConfig, handler *Handler, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reminders/settings", handler.HandleSettings)
	mux.HandleFunc("/api/reminders/discord", handler.HandleDiscordInvite)
	mux.HandleFunc("/healthz", handler.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      mux,
			ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		},
		logger: log,
	}
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{
		"address": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
