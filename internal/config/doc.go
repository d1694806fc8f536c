// Package config loads the service configuration from multiple sources (YAML
// files, environment variables, CLI flags) with precedence: CLI flags > YAML
// config > Environment variables > Defaults. Besides server settings it
// carries the base configuration that the property overlay is merged onto.
package config
