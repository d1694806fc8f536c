// Package property provides the key/value property sources consulted when
// overlaying settings: the process environment, a concurrency-safe in-memory
// store and flat YAML properties files.
package property
