package http

import (
	"time"

	"github.com/MKhiriev/go-apm-agent-config/internal/agentconfig"
	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

// ConfigSource is the read side of the agent configuration the diagnostics
// endpoints render. *agentconfig.Reader implements it.
type ConfigSource interface {
	Snapshot() agentconfig.Snapshot
}

type Handler struct {
	config         ConfigSource
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler builds the diagnostics handler. A zero requestTimeout leaves
// requests unbounded.
func NewHandler(config ConfigSource, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		config:         config,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
