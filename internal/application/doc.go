// Package application provides application initialization and dependency wiring.
// It builds the setting catalog, seeds the property store, and creates the
// overlay, handlers, router and HTTP server, keeping the main package focused
// on CLI parsing and orchestration.
package application
