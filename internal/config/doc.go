// Package config provides loading, merging, and validation of the agent
// process's bootstrap configuration.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables prefixed with APM_AGENT_
//  3. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
