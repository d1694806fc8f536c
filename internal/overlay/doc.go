// Package overlay picks validated values for known settings out of a
// property source and returns them as a fresh configuration overlay.
//
// Only settings present in the registry are considered. A property whose
// value fails the setting's validator is treated as not set; no error is
// returned. Evaluate exposes the rejection reasons for diagnostics.
package overlay
