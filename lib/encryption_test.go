package lib

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ciphertext, err := Encrypt("0551234567", testKey)
	require.NoError(t, err)
	require.NotEmpty(t, ciphertext)
	assert.NotEqual(t, "0551234567", ciphertext)

	plaintext, err := Decrypt(ciphertext, testKey)
	require.NoError(t, err)
	assert.Equal(t, "0551234567", plaintext)
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	ciphertext, err := Encrypt("", testKey)
	require.NoError(t, err)
	assert.Empty(t, ciphertext)
}

func TestEncryptRejectsShortKey(t *testing.T) {
	_, err := Encrypt("data", "short")
	assert.Error(t, err)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	ciphertext, err := Encrypt("secret", testKey)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw), testKey)
	assert.Error(t, err)
}
