// Package setting declares typed configuration settings: a name, a short
// description, an optional default and a rule deciding which string values
// the setting accepts. Settings are grouped into an ordered Registry that is
// built once at startup and shared read-only.
package setting
