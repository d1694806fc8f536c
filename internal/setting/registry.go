package setting

import (
	"fmt"
	"slices"
)

// Registry is an ordered, read-only collection of settings keyed by name.
type Registry struct {
	settings []Setting
	index    map[string]int
}

// NewRegistry builds a registry preserving declaration order. Every setting
// needs a name and a validator, and names must be unique.
func NewRegistry(settings ...Setting) (*Registry, error) {
	r := &Registry{
		settings: make([]Setting, 0, len(settings)),
		index:    make(map[string]int, len(settings)),
	}
	for _, s := range settings {
		if s.Name == "" || s.Validator == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSetting, s.Name)
		}
		if _, exists := r.index[s.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSetting, s.Name)
		}
		r.index[s.Name] = len(r.settings)
		r.settings = append(r.settings, s)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. Intended for
// statically declared catalogs.
func MustRegistry(settings ...Setting) *Registry {
	r, err := NewRegistry(settings...)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the settings in declaration order.
func (r *Registry) All() []Setting {
	if r == nil {
		return nil
	}
	return slices.Clone(r.settings)
}

// Names returns the setting names in declaration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.settings))
	for i, s := range r.settings {
		names[i] = s.Name
	}
	return names
}

// Lookup returns the setting registered under name.
func (r *Registry) Lookup(name string) (Setting, bool) {
	if r == nil {
		return Setting{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Setting{}, false
	}
	return r.settings[i], true
}

// Len returns the number of registered settings.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.settings)
}

// Validate checks value against the named setting. Unknown names are reported
// as ErrInvalidSetting.
func (r *Registry) Validate(name, value string) error {
	s, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", ErrInvalidSetting, name)
	}
	return s.Validate(value)
}
