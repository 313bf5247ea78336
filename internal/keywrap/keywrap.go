// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

// Package keywrap seals and opens short string values with a key derived
// from a passphrase. Values are encrypted with AES-256-GCM under an Argon2id
// key; each sealed blob carries its own random salt and nonce
// (blob = salt ‖ nonce ‖ ciphertext, base64-encoded), so equal plaintexts
// never produce equal ciphertexts.
package keywrap

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const saltLen = 16

// Cipher encrypts and decrypts values with a passphrase-derived key.
type Cipher struct {
	passphrase []byte

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// New constructs a [Cipher] with the Argon2id parameters recommended by
// OWASP (2024): 1 iteration, 64 MiB memory, 4 threads, 256-bit key.
func New(passphrase string) *Cipher {
	return &Cipher{
		passphrase:   []byte(passphrase),
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// Encrypt seals plaintext and returns the base64-encoded blob.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Prepend salt and nonce so Decrypt can split them out again.
	blob := append(salt, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by [Cipher.Encrypt].
func (c *Cipher) Decrypt(encoded string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(blob) < saltLen {
		return "", errors.New("ciphertext too short")
	}

	salt, rest := blob[:saltLen], blob[saltLen:]
	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	if len(rest) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plaintext), nil
}

// aead derives the AES-256-GCM AEAD for one salt.
func (c *Cipher) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(c.passphrase, salt, c.argonTime, c.argonMemory, c.argonThreads, c.argonKeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
