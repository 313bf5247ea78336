// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

// Merge combines the outputs of sources into a single mapping.
//
// Sources are applied in sequence order: each source's entries overwrite any
// existing entry with the same normalized key, wholesale — nested values are
// never deep-merged. Callers express precedence purely through ordering
// (defaults before files, files before environment, environment before
// explicit overrides), so no secondary priority system exists.
//
// A failing source aborts the merge: the returned error is a [*SourceError]
// naming the source, and no partial mapping is returned. Given the same
// sources and unchanged backing data, Merge is deterministic.
func Merge(sources ...Source) (map[string]any, error) {
	merged := make(map[string]any)
	for _, source := range sources {
		values, err := source.Load()
		if err != nil {
			return nil, &SourceError{Source: source.String(), Err: err}
		}
		for key, value := range values {
			merged[NormalizeKey(key)] = value
		}
	}
	return merged, nil
}
