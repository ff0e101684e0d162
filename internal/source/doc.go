// Package source defines the configuration sources the agent reads from and
// ships the implementations used by the agent binary and its tests.
//
// A [Provider] is a structured, colon-addressed store (for example
// "ElasticApm:LogLevel") that can announce mutations through one-shot
// [ChangeToken] values. An [Environment] is a flat name lookup with no change
// notification. [Watch] turns the one-shot tokens into a subscription that
// stays armed until its context is cancelled.
package source
