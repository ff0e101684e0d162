// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level bootstrap configuration of the agent
// process. It tells the agent where its settings live and how to expose
// diagnostics; the agent settings themselves (log level, server URLs, ...)
// are resolved at runtime by the agentconfig package.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - validate: go-playground/validator rules checked after merging.
//
// Every environment variable additionally carries the APM_AGENT_ prefix.
type StructuredConfig struct {
	// Settings locates the agent settings file.
	Settings Settings `envPrefix:"SETTINGS_"`

	// Debug configures the optional diagnostics HTTP listener.
	Debug Debug `envPrefix:"DEBUG_"`

	// Log configures the process logger.
	Log Log `envPrefix:"LOG_"`
}

// Settings locates the structured configuration provider's backing file.
type Settings struct {
	// File is the path to a JSON, YAML or TOML settings file holding the
	// "ElasticApm" section. When empty the agent runs on environment
	// variables and defaults only.
	// Env: APM_AGENT_SETTINGS_FILE
	File string `env:"FILE"`

	// Watch enables reloading File whenever it changes on disk. A SIGHUP
	// always forces a reload regardless of this flag. Requires File.
	// Env: APM_AGENT_SETTINGS_WATCH
	Watch bool `env:"WATCH" validate:"excluded_without=File"`
}

// Debug holds settings for the diagnostics listener.
type Debug struct {
	// Address is the TCP address the diagnostics server listens on, in
	// "host:port" format (e.g. "127.0.0.1:8201"). Empty disables it.
	// Env: APM_AGENT_DEBUG_ADDRESS
	Address string `env:"ADDRESS" validate:"omitempty,hostname_port"`

	// RequestTimeout bounds the handling of a single diagnostics request.
	// Env: APM_AGENT_DEBUG_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`

	// ShutdownTimeout bounds the graceful shutdown of the listener.
	// Env: APM_AGENT_DEBUG_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// Log holds settings for the process logger.
type Log struct {
	// Role is the value of the "role" field on every log entry.
	// Env: APM_AGENT_LOG_ROLE
	Role string `env:"ROLE" validate:"required"`
}

// Defaults applied to fields no other source sets.
const (
	DefaultLogRole              = "apm-agent"
	DefaultDebugRequestTimeout  = 5 * time.Second
	DefaultDebugShutdownTimeout = 10 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Debug: Debug{
			RequestTimeout:  DefaultDebugRequestTimeout,
			ShutdownTimeout: DefaultDebugShutdownTimeout,
		},
		Log: Log{
			Role: DefaultLogRole,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the bootstrap
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Command-line flags parsed from args (without the program name)
//  2. Environment variables with the APM_AGENT_ prefix
//  3. Built-in defaults
//
// Boolean options can only be switched on by a source; a false value never
// overrides a lower-priority true.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv(nil).
		withDefaults().
		build()
}
