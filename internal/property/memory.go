package property

import (
	"maps"
	"sync"
)

// MemoryStore keeps properties in-memory and guards access with a RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewMemoryStore initialises a store with a copy of initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	return &MemoryStore{
		props: cloneProps(initial),
	}
}

// Lookup returns the value stored under key.
func (s *MemoryStore) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.props[key]
	return value, ok
}

// Set stores value under key. Empty keys are rejected.
func (s *MemoryStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	s.props[key] = value
	s.mu.Unlock()

	return nil
}

// Unset removes key. Removing a missing key is a no-op.
func (s *MemoryStore) Unset(key string) {
	s.mu.Lock()
	delete(s.props, key)
	s.mu.Unlock()
}

// Load replaces the whole contents of the store with a copy of props.
func (s *MemoryStore) Load(props map[string]string) error {
	if _, ok := props[""]; ok {
		return ErrEmptyKey
	}

	next := cloneProps(props)
	s.mu.Lock()
	s.props = next
	s.mu.Unlock()

	return nil
}

// Snapshot returns a defensive copy of all stored properties.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneProps(s.props)
}

func cloneProps(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	return maps.Clone(src)
}
