// Package sysprop holds process-level configuration properties: named string
// values set once at startup (from property files or -D definitions) and read
// by every property in the process.
package sysprop

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/ytimocin/dapr-sdk-go/internal/snapshot"
)

// Store is a thread-safe map of property names to raw string values.
type Store struct {
	values map[string]string
	mu     sync.RWMutex
}

var global = NewStore()

// Global returns the process-wide store.
func Global() *Store {
	return global
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Lookup returns the value stored under key and whether it was present.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Get returns the value stored under key, or "" when absent.
func (s *Store) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// SetAll stores every entry of values.
func (s *Store) SetAll(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
}

// Clear removes key and returns the value it held, if any.
func (s *Store) Clear(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	delete(s.values, key)
	return v, ok
}

// Reset removes every property.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}

// Len returns the number of stored properties.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Keys returns the stored property names in lexical order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns an independent copy of the stored properties.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *snapshot.MustCopy(&s.values)
}

// Load reads every file in paths, merges them in order and stores the
// result. Nothing is stored if any file fails.
func (s *Store) Load(paths ...string) error {
	values, err := LoadFiles(paths...)
	if err != nil {
		return err
	}
	s.SetAll(values)
	log.Debug().Strs("files", paths).Int("properties", len(values)).Msg("Loaded property files")
	return nil
}
