// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotInitialized is returned by the package-level lookup functions
	// when they are called before any successful [Load].
	ErrNotInitialized = errors.New("global configuration is not loaded")

	// ErrAlreadyLoaded is returned by [Store.Load] (and the package-level
	// [Load]) when the store already holds configuration and reload semantics
	// were not explicitly requested. It guards long-running processes against
	// accidental double initialization.
	ErrAlreadyLoaded = errors.New("configuration is already loaded")

	// ErrSecretsDecrypted is returned by [Store.DecryptSecrets] when the
	// store's secrets are already in plaintext.
	ErrSecretsDecrypted = errors.New("secrets are already decrypted")

	// ErrSecretsEncrypted is returned by [Store.EncryptSecrets] when the
	// store's secrets are already encrypted.
	ErrSecretsEncrypted = errors.New("secrets are already encrypted")
)

// SourceError attributes a failed load to the source that produced it, so a
// misconfiguration is diagnosable without inspecting merge internals.
type SourceError struct {
	// Source is the identity of the failing source, e.g. `file "cfg.json"`
	// or `env prefix "MYAPP_"`.
	Source string
	// Err is the underlying cause.
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// MissingKeysError reports configuration keys that are required but absent.
// When raised from a batch [Store.Require] it lists every missing key, not
// just the first, so callers see the full gap in one pass.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	quoted := make([]string, len(e.Keys))
	for i, key := range e.Keys {
		quoted[i] = fmt.Sprintf("%q", key)
	}
	return "missing required configuration: " + strings.Join(quoted, ", ")
}

// CoercionError reports a typed accessor that could not convert a stored
// value to the requested type.
type CoercionError struct {
	Key    string
	Value  any
	Target string
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("key %q: cannot convert %T to %s: %v", e.Key, e.Value, e.Target, e.Err)
	}
	return fmt.Sprintf("key %q: cannot convert %T to %s", e.Key, e.Value, e.Target)
}

func (e *CoercionError) Unwrap() error { return e.Err }
