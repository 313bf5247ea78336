// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"fmt"

	"github.com/omniconf/omniconf/internal/keywrap"
)

// SecretsKey is the configuration key whose value lists the keys that are
// stored encrypted. The value should be a list of key names.
const SecretsKey = "SECRETS"

// Cipher encrypts and decrypts individual configuration values. The package
// never chooses a cipher on its own; callers supply one, typically from
// [NewPassphraseCipher].
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// NewPassphraseCipher returns a [Cipher] that derives a key from passphrase
// with Argon2id and seals values with AES-256-GCM.
func NewPassphraseCipher(passphrase string) Cipher {
	return keywrap.New(passphrase)
}

// DecryptSecrets replaces the ciphertext of every key listed under
// [SecretsKey] with its plaintext. Decrypting an already-decrypted store
// fails with [ErrSecretsDecrypted]. When no SECRETS entry exists a warning
// is logged and the store is simply marked decrypted.
//
// The replacement happens on a fresh map that is swapped in wholesale, so
// concurrent readers never observe a half-decrypted mapping.
func (s *Store) DecryptSecrets(c Cipher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.secretsOpen {
		return ErrSecretsDecrypted
	}
	if err := s.transformSecrets(c.Decrypt, "decrypt"); err != nil {
		return err
	}
	s.secretsOpen = true
	return nil
}

// EncryptSecrets is the inverse of [Store.DecryptSecrets]: every key listed
// under [SecretsKey] is re-encrypted. Encrypting an already-encrypted store
// fails with [ErrSecretsEncrypted].
func (s *Store) EncryptSecrets(c Cipher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.secretsOpen {
		return ErrSecretsEncrypted
	}
	if err := s.transformSecrets(c.Encrypt, "encrypt"); err != nil {
		return err
	}
	s.secretsOpen = false
	return nil
}

// transformSecrets applies fn to the value of every secret key. Callers hold
// the write lock.
func (s *Store) transformSecrets(fn func(string) (string, error), op string) error {
	keys, err := s.secretKeysLocked()
	if err != nil {
		return err
	}

	values := make(map[string]any, len(s.values))
	for key, value := range s.values {
		values[key] = value
	}
	for _, key := range keys {
		value, ok := values[key]
		if !ok {
			return &MissingKeysError{Keys: []string{key}}
		}
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s secret %q: value is %T, not a string", op, key, value)
		}
		transformed, err := fn(str)
		if err != nil {
			return fmt.Errorf("%s secret %q: %w", op, key, err)
		}
		values[key] = transformed
	}

	s.values = values
	return nil
}

// SetEncrypted stores value under key in encrypted form and records key in
// the [SecretsKey] list. When the store is currently decrypted, the raw
// value is stored instead; it will be sealed by the next
// [Store.EncryptSecrets].
func (s *Store) SetEncrypted(c Cipher, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := NormalizeKey(key)
	stored := value
	if !s.secretsOpen {
		sealed, err := c.Encrypt(value)
		if err != nil {
			return fmt.Errorf("encrypt secret %q: %w", normalized, err)
		}
		stored = sealed
	}

	keys, err := s.secretKeysLocked()
	if err != nil {
		return err
	}

	s.values[normalized] = stored
	s.values[SecretsKey] = append(keys, normalized)
	return nil
}

// GetEncrypted returns the plaintext of the secret stored under key,
// decrypting on the fly when the store is still encrypted.
func (s *Store) GetEncrypted(c Cipher, key string) (string, error) {
	s.mu.RLock()
	value, ok := s.values[NormalizeKey(key)]
	open := s.secretsOpen
	s.mu.RUnlock()

	if !ok {
		return "", &MissingKeysError{Keys: []string{NormalizeKey(key)}}
	}
	str, isString := value.(string)
	if !isString {
		return "", fmt.Errorf("secret %q: value is %T, not a string", NormalizeKey(key), value)
	}
	if open {
		return str, nil
	}
	plain, err := c.Decrypt(str)
	if err != nil {
		return "", fmt.Errorf("decrypt secret %q: %w", NormalizeKey(key), err)
	}
	return plain, nil
}

// secretKeysLocked reads the SECRETS list. A missing entry is not an error —
// it just means no secrets are declared — but it is worth a warning, since a
// store with encrypted values and no SECRETS list will never decrypt them.
func (s *Store) secretKeysLocked() ([]string, error) {
	raw, ok := s.values[SecretsKey]
	if !ok {
		s.logger.Warn().Str("key", SecretsKey).Msg("no secrets list in configuration")
		return nil, nil
	}

	switch list := raw.(type) {
	case []string:
		keys := make([]string, len(list))
		for i, key := range list {
			keys[i] = NormalizeKey(key)
		}
		return keys, nil
	case []any:
		keys := make([]string, 0, len(list))
		for _, item := range list {
			key, isString := item.(string)
			if !isString {
				return nil, fmt.Errorf("%s entry %v is %T, not a string", SecretsKey, item, item)
			}
			keys = append(keys, NormalizeKey(key))
		}
		return keys, nil
	default:
		return nil, fmt.Errorf("%s must be a list of keys, got %T", SecretsKey, raw)
	}
}
