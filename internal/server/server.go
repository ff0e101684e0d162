package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-apm-agent-config/internal/config"
	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	running      atomic.Bool
	shutdownOnce sync.Once
}

// NewServer builds the diagnostics server for router. It fails when no
// listen address is configured.
func NewServer(router http.Handler, cfg config.Debug, logger *logger.Logger) (Server, error) {
	if cfg.Address == "" {
		return nil, errNoServersAreCreated
	}

	logger.Info().Msg("creating new server...")
	return &server{
		httpServer: newHTTPServer(router, cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}

	serveErr := make(chan error, 1)
	s.logger.Info().Msg("Launching HTTP server")
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	select {
	case err := <-serveErr:
		// The listener failed or someone else called Shutdown.
		return err
	case <-ctx.Done():
	}

	s.Shutdown()
	err := <-serveErr
	s.logger.Info().Msg("server Shutdown gracefully")
	return err
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(s.httpServer.Shutdown)
}

func (s *server) Addr() string {
	return s.httpServer.Addr()
}
