// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"fmt"
	"os"
	"strings"
)

// EnvSource loads configuration from process environment variables whose
// names start with Prefix. The prefix match is case-sensitive; emitted keys
// are normalized to upper case.
type EnvSource struct {
	// Prefix filters the environment. An empty prefix admits every variable.
	Prefix string

	// KeepPrefix leaves the prefix on emitted keys. By default the prefix
	// and the separator following it are stripped, so with prefix "MYAPP_"
	// the variable MYAPP_TIMEOUT is emitted as TIMEOUT.
	KeepPrefix bool
}

// NewEnvSource returns an [EnvSource] that strips prefix from emitted keys.
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{Prefix: prefix}
}

// Load implements [Source]. It scans os.Environ once; variables without the
// prefix are ignored, never an error.
func (s *EnvSource) Load() (map[string]any, error) {
	values := make(map[string]any)
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if !strings.HasPrefix(name, s.Prefix) {
			continue
		}

		key := name
		if !s.KeepPrefix {
			key = strings.TrimPrefix(key, s.Prefix)
			key = strings.TrimPrefix(key, "_")
		}
		if key == "" {
			continue
		}
		values[NormalizeKey(key)] = value
	}
	return values, nil
}

func (s *EnvSource) String() string {
	return fmt.Sprintf("env prefix %q", s.Prefix)
}
