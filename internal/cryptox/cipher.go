// Package cryptox implements the document protection scheme: per-file
// AES-256-GCM encryption with a one-time symmetric key, and wrapping of that
// key for each authorized reviewer.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/anocare/anocare/internal/common"
)

const (
	// KeySize is the symmetric key length (AES-256).
	KeySize = 32

	// NonceSize is the GCM nonce length. A fresh nonce is generated per
	// encryption; a key is used for exactly one file, so nonce reuse
	// cannot occur.
	NonceSize = 12
)

// GenerateKey returns a fresh random 32-byte symmetric key.
func GenerateKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// Encrypt seals plaintext under key with AES-GCM and a fresh random nonce.
// The ciphertext and nonce are returned separately.
func Encrypt(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// Decrypt recovers the plaintext. A failed authentication tag (tampered
// ciphertext, wrong key, wrong nonce) yields common.ErrIntegrityFailure;
// partial plaintext is never returned.
func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrIntegrityFailure, err)
	}

	return plaintext, nil
}

// SealBlob encrypts plaintext and returns nonce||ciphertext, the at-rest
// layout pinned to the network. OpenBlob reverses it.
func SealBlob(plaintext, key []byte) ([]byte, error) {
	ciphertext, nonce, err := Encrypt(plaintext, key)
	if err != nil {
		return nil, err
	}
	return append(nonce, ciphertext...), nil
}

func OpenBlob(blob, key []byte) ([]byte, error) {
	if len(blob) < NonceSize {
		return nil, fmt.Errorf("%w: blob shorter than nonce", common.ErrIntegrityFailure)
	}
	return Decrypt(blob[NonceSize:], blob[:NonceSize], key)
}

// Wipe zeroes key material that is no longer needed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	return cipher.NewGCM(block)
}
