package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-apm-agent-config/internal/config"
	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

type httpServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
	addr            atomic.Pointer[string]
	logger          *logger.Logger
}

func newHTTPServer(router http.Handler, cfg config.Debug, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           router,
			ReadHeaderTimeout: cfg.RequestTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// RunServer listens and serves until Shutdown. A clean shutdown returns nil.
func (h *httpServer) RunServer() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", h.server.Addr, err)
	}

	bound := ln.Addr().String()
	h.addr.Store(&bound)
	h.logger.Info().Str("address", bound).Msg("HTTP server listening")

	if err = h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown() {
	ctx := context.Background()
	if h.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.shutdownTimeout)
		defer cancel()
	}

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Msg("HTTP server Shutdown")
	}
}

func (h *httpServer) Addr() string {
	if p := h.addr.Load(); p != nil {
		return *p
	}
	return ""
}
