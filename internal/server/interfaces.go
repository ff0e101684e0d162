package server

import "context"

// Server defines the lifecycle contract for the transport servers managed by
// this package.
type Server interface {
	// RunServer starts serving requests and blocks until ctx is cancelled or
	// the listener fails. On cancellation it shuts down gracefully.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	// It is safe to call more than once.
	Shutdown()

	// Addr returns the bound listen address once RunServer has started
	// listening, and an empty string before.
	Addr() string
}
