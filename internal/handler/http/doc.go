// Package http implements the agent's diagnostics HTTP endpoints.
//
// It exposes a liveness probe and read-only views of the resolved agent
// configuration and of the recognized settings. Request tracing and access
// logging are handled by middleware in this package.
package http
