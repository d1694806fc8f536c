package property

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a flat YAML mapping of property keys to scalar values.
// Scalars keep their literal text, so `read_only: true` yields "true".
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a flat YAML properties document.
func Parse(data []byte) (map[string]string, error) {
	props := map[string]string{}
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if _, ok := props[""]; ok {
		return nil, ErrEmptyKey
	}
	return props, nil
}
