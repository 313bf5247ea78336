package keywrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastCipher lowers the Argon2id cost so the suite stays quick; the
// construction under test is identical.
func fastCipher(passphrase string) *Cipher {
	c := New(passphrase)
	c.argonMemory = 8 * 1024
	return c
}

// TestCipher_RoundTrip verifies encrypt/decrypt symmetry.
func TestCipher_RoundTrip(t *testing.T) {
	c := fastCipher("correct horse battery staple")

	sealed, err := c.Encrypt("db-password")
	require.NoError(t, err)
	assert.NotEqual(t, "db-password", sealed)

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "db-password", plain)
}

// TestCipher_UniqueBlobs verifies that equal plaintexts seal to different
// blobs thanks to the per-call salt and nonce.
func TestCipher_UniqueBlobs(t *testing.T) {
	c := fastCipher("pass")

	first, err := c.Encrypt("same")
	require.NoError(t, err)
	second, err := c.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// TestCipher_WrongPassphrase verifies authenticated decryption: a different
// passphrase must fail, not return garbage.
func TestCipher_WrongPassphrase(t *testing.T) {
	sealed, err := fastCipher("right").Encrypt("value")
	require.NoError(t, err)

	_, err = fastCipher("wrong").Decrypt(sealed)
	assert.Error(t, err)
}

// TestCipher_MalformedBlobs verifies the decode guards.
func TestCipher_MalformedBlobs(t *testing.T) {
	c := fastCipher("pass")

	_, err := c.Decrypt("not base64 !!!")
	assert.Error(t, err)

	_, err = c.Decrypt("c2hvcnQ=") // valid base64, shorter than a salt
	assert.Error(t, err)
}
