package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidSettingsConfigs indicates invalid settings file options.
	ErrInvalidSettingsConfigs = errors.New("invalid settings configuration")
	// ErrInvalidDebugConfigs indicates invalid diagnostics listener settings
	// (for example, a malformed address or a non-positive timeout).
	ErrInvalidDebugConfigs = errors.New("invalid debug configuration")
	// ErrInvalidLogConfigs indicates invalid logger settings (for example,
	// an empty role).
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
