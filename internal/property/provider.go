package property

import "errors"

// ErrEmptyKey is returned when a property is written without a key.
var ErrEmptyKey = errors.New("property key must not be empty")

// Provider resolves raw property values by key.
type Provider interface {
	Lookup(key string) (string, bool)
}

// Store is a Provider whose contents can be changed at runtime.
type Store interface {
	Provider
	Set(key, value string) error
	Unset(key string)
}

// Snapshot copies the values of keys present in p.
func Snapshot(p Provider, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	if p == nil {
		return out
	}
	for _, key := range keys {
		if value, ok := p.Lookup(key); ok {
			out[key] = value
		}
	}
	return out
}
