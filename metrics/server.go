package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Endpoint the endpoint for exposing the metrics
	Endpoint = "/metrics"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server exposes the prometheus metrics over http.
type Server struct {
	server *http.Server
}

// NewServer creates a new server that exposes metrics.
func NewServer(cfg Config) *Server {
	mux := http.NewServeMux()
	mux.Handle(Endpoint, promhttp.Handler())

	return &Server{
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Start serves the metrics until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.Warnf("error shutting down metrics server: %v", err)
		}
	}()

	log.Infof("metrics server listening on %s%s", s.server.Addr, Endpoint)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not listen and serve: %w", err)
	}
	return nil
}
