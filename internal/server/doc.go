// Package server runs the agent's diagnostics HTTP listener.
//
// It owns the listener lifecycle: binding, serving until the caller's
// context is cancelled, and graceful shutdown bounded by the configured
// timeout.
package server
