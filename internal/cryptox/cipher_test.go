package cryptox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anocare/anocare/internal/common"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := GenerateKey()
	plaintext := []byte("license scan bytes")

	ciphertext, nonce, err := Encrypt(plaintext, key)
	require.NoError(t, err)
	assert.Len(t, nonce, NonceSize)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := Decrypt(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecrypt_WrongKey(t *testing.T) {
	k1 := GenerateKey()
	k2 := GenerateKey()

	ciphertext, nonce, err := Encrypt([]byte("secret"), k1)
	require.NoError(t, err)

	_, err = Decrypt(ciphertext, nonce, k2)
	assert.True(t, errors.Is(err, common.ErrIntegrityFailure))
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	key := GenerateKey()

	ciphertext, nonce, err := Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff
	_, err = Decrypt(ciphertext, nonce, key)
	assert.True(t, errors.Is(err, common.ErrIntegrityFailure))
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	key := GenerateKey()

	_, n1, err := Encrypt([]byte("x"), key)
	require.NoError(t, err)
	_, n2, err := Encrypt([]byte("x"), key)
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
}

func TestEncrypt_BadKeySize(t *testing.T) {
	_, _, err := Encrypt([]byte("x"), []byte("short"))
	assert.Error(t, err)
}

func TestSealOpenBlob(t *testing.T) {
	key := GenerateKey()
	plaintext := []byte("national id scan")

	blob, err := SealBlob(plaintext, key)
	require.NoError(t, err)

	got, err := OpenBlob(blob, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	_, err = OpenBlob([]byte("tiny"), key)
	assert.True(t, errors.Is(err, common.ErrIntegrityFailure))
}
