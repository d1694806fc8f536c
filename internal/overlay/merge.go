package overlay

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge returns a new map with the entries of base overridden by overlay.
// Neither input is modified.
func Merge(base, overlay map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	if err := mergo.Merge(&merged, overlay, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge overlay: %w", err)
	}
	return merged, nil
}
