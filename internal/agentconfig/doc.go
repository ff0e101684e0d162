// Package agentconfig resolves the agent's runtime settings.
//
// Every setting is read from a structured [source.Provider] first and from an
// environment variable when the provider has no value, then parsed into its
// typed form. Malformed input never surfaces as an error: the parser logs the
// origin, key and raw value and falls back to the documented default.
//
// The log level is the only cached setting. A [Reader] keeps it current by
// watching the provider's "ElasticApm" section, so verbosity can be changed
// while the process runs.
package agentconfig
