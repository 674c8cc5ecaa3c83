package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cipher := New("unit-test-key")

	plaintexts := []string{
		"8203155012089",
		"a",
		"exactly sixteen!", // whole block, forces a full padding block
		"much longer value spanning several cipher blocks with spaces",
		"ünïcödé-1234",
	}

	for _, plaintext := range plaintexts {
		encrypted, err := cipher.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := cipher.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptIsDeterministic(t *testing.T) {
	cipher := New("unit-test-key")

	first, err := cipher.Encrypt("8203155012089")
	require.NoError(t, err)
	second, err := cipher.Encrypt("8203155012089")
	require.NoError(t, err)

	assert.Equal(t, first, second, "equal plaintexts must map to equal stored values")
}

func TestEmptyStringPassesThrough(t *testing.T) {
	cipher := New("unit-test-key")

	encrypted, err := cipher.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", encrypted)

	decrypted, err := cipher.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", decrypted)
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	cipher := New("unit-test-key")

	_, err := cipher.Decrypt("not base64 at all!")
	assert.Error(t, err)

	// Valid base64 of three bytes: not a whole number of blocks.
	_, err = cipher.Decrypt("YWJj")
	assert.Error(t, err)
}

func TestKeyLongerThanKeySizeIsTruncated(t *testing.T) {
	long := strings.Repeat("k", 48)
	truncated := long[:32]

	fromLong, err := New(long).Encrypt("8203155012089")
	require.NoError(t, err)
	fromTruncated, err := New(truncated).Encrypt("8203155012089")
	require.NoError(t, err)

	assert.Equal(t, fromTruncated, fromLong)
}

func TestShortKeyIsZeroPadded(t *testing.T) {
	encrypted, err := New("k").Encrypt("8203155012089")
	require.NoError(t, err)

	decrypted, err := New("k").Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "8203155012089", decrypted)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	encrypted, err := New("writer-key").Encrypt("8203155012089")
	require.NoError(t, err)

	decrypted, err := New("reader-key").Decrypt(encrypted)
	if err == nil {
		// CBC under the wrong key almost always breaks the padding; when it
		// happens to parse, the plaintext still cannot match.
		assert.NotEqual(t, "8203155012089", decrypted)
	}
}
