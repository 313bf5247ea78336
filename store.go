// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store owns one merged configuration mapping and offers validated lookup.
//
// A Store is created empty, populated on the first [Store.Load], replaced
// wholesale on [Store.Reload], and emptied on [Store.Clear] — nothing else
// mutates it. Every operation takes the mapping under a read-write lock and
// mutation always swaps in a freshly built map, so a single operation never
// observes a half-populated mapping. Stores are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
	loaded bool

	// secretsOpen is true while values listed under the SECRETS key hold
	// plaintext. See [Store.DecryptSecrets].
	secretsOpen bool

	logger zerolog.Logger
}

// StoreOption configures a [Store] at construction time.
type StoreOption func(*Store)

// WithStoreLogger attaches a zerolog logger for load diagnostics. The
// default logger discards everything; the store never logs errors it also
// returns.
func WithStoreLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore returns an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		values: make(map[string]any),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load merges sources and stores the result. If the store already holds
// configuration it fails with [ErrAlreadyLoaded] and leaves the mapping
// untouched; use [Store.Reload] when replacement is intended.
func (s *Store) Load(sources ...Source) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return ErrAlreadyLoaded
	}
	return s.replace(sources, false)
}

// Reload unconditionally replaces the stored mapping with a fresh merge of
// sources. A failed merge leaves the previous mapping in place.
func (s *Store) Reload(sources ...Source) error {
	return s.replace(sources, true)
}

func (s *Store) replace(sources []Source, force bool) error {
	merged, err := Merge(sources...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.loaded && !force {
		// Re-check under the write lock; two racing first Loads must not
		// both succeed.
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.values = merged
	s.loaded = true
	s.secretsOpen = false
	s.mu.Unlock()

	s.logger.Debug().
		Int("keys", len(merged)).
		Int("sources", len(sources)).
		Msg("configuration loaded")
	return nil
}

// Clear empties the store. Intended for test isolation.
func (s *Store) Clear() {
	s.mu.Lock()
	s.values = make(map[string]any)
	s.loaded = false
	s.secretsOpen = false
	s.mu.Unlock()
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[NormalizeKey(key)]
	return ok
}

// Snapshot returns a copy of the merged mapping. The map itself is fresh;
// nested values are shared with the store and must be treated as read-only.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]any, len(s.values))
	for key, value := range s.values {
		snapshot[key] = value
	}
	return snapshot
}

// Get returns the value stored under key. An absent key is a
// [*MissingKeysError] naming the key — the fail-fast guarantee. Callers that
// can tolerate absence should use [Store.GetDefault].
func (s *Store) Get(key string) (any, error) {
	normalized := NormalizeKey(key)

	s.mu.RLock()
	value, ok := s.values[normalized]
	s.mu.RUnlock()

	if !ok {
		return nil, &MissingKeysError{Keys: []string{normalized}}
	}
	return value, nil
}

// GetDefault returns the value stored under key, or def when absent.
func (s *Store) GetDefault(key string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value, ok := s.values[NormalizeKey(key)]; ok {
		return value
	}
	return def
}

// GetString returns the value under key coerced to a string.
func (s *Store) GetString(key string) (string, error) {
	value, err := s.Get(key)
	if err != nil {
		return "", err
	}
	converted, err := toString(value)
	if err != nil {
		return "", &CoercionError{Key: NormalizeKey(key), Value: value, Target: "string", Err: err}
	}
	return converted, nil
}

// GetBool returns the value under key coerced to a bool.
func (s *Store) GetBool(key string) (bool, error) {
	value, err := s.Get(key)
	if err != nil {
		return false, err
	}
	converted, err := toBool(value)
	if err != nil {
		return false, &CoercionError{Key: NormalizeKey(key), Value: value, Target: "bool", Err: err}
	}
	return converted, nil
}

// GetInt returns the value under key coerced to an int64. Floating-point
// values convert only when they carry no fraction.
func (s *Store) GetInt(key string) (int64, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	converted, err := toInt(value)
	if err != nil {
		return 0, &CoercionError{Key: NormalizeKey(key), Value: value, Target: "int64", Err: err}
	}
	return converted, nil
}

// GetFloat returns the value under key coerced to a float64.
func (s *Store) GetFloat(key string) (float64, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	converted, err := toFloat(value)
	if err != nil {
		return 0, &CoercionError{Key: NormalizeKey(key), Value: value, Target: "float64", Err: err}
	}
	return converted, nil
}

// GetDuration returns the value under key coerced to a [time.Duration].
// Strings parse via time.ParseDuration; raw numbers count nanoseconds.
func (s *Store) GetDuration(key string) (time.Duration, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	converted, err := toDuration(value)
	if err != nil {
		return 0, &CoercionError{Key: NormalizeKey(key), Value: value, Target: "time.Duration", Err: err}
	}
	return converted, nil
}

// Require validates that every key is present. It returns a single
// [*MissingKeysError] listing all absent keys, so callers see the full gap
// in one pass instead of fixing keys one at a time.
func (s *Store) Require(keys ...string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []string
	for _, key := range keys {
		normalized := NormalizeKey(key)
		if _, ok := s.values[normalized]; !ok {
			missing = append(missing, normalized)
		}
	}
	if len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}
	return nil
}
