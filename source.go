// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

// Source produces a flat mapping of configuration keys to values from one
// backing mechanism (environment, file, object, literal map).
//
// Load must be free of side effects beyond reading its backing data:
// re-running it with unchanged backing data must reproduce the same mapping.
// Implementations are not required to normalize keys; [Merge] normalizes
// every key it accepts.
type Source interface {
	// Load produces the source's key/value mapping.
	Load() (map[string]any, error)

	// String identifies the source in error messages.
	String() string
}

// MapSource is a literal-override source: it emits its mapping verbatim,
// key-normalized. It is the highest-precedence convenience source installed
// by [WithOverrides].
type MapSource map[string]any

// Load implements [Source]. The receiver is copied so later mutation of the
// original map cannot leak into a merged store.
func (s MapSource) Load() (map[string]any, error) {
	values := make(map[string]any, len(s))
	for key, value := range s {
		values[NormalizeKey(key)] = value
	}
	return values, nil
}

func (s MapSource) String() string { return "overrides" }
