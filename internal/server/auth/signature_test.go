package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anocare/anocare/internal/common"
)

func newTestKey(t *testing.T) (keyHex, address string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return hexutil.Encode(crypto.FromECDSA(key)), crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func TestVerifyPersonalSignature(t *testing.T) {
	keyHex, address := newTestKey(t)

	sig, err := SignPersonal("login:abc", keyHex)
	require.NoError(t, err)

	assert.NoError(t, VerifyPersonalSignature(address, "login:abc", sig))

	// lowercase claimed address verifies too
	assert.NoError(t, VerifyPersonalSignature(strings.ToLower(address), "login:abc", sig))
}

func TestVerifyPersonalSignature_WrongSigner(t *testing.T) {
	keyHex, _ := newTestKey(t)
	_, otherAddress := newTestKey(t)

	sig, err := SignPersonal("login:abc", keyHex)
	require.NoError(t, err)

	err = VerifyPersonalSignature(otherAddress, "login:abc", sig)
	assert.True(t, errors.Is(err, common.ErrNotAuthorized))
}

func TestVerifyPersonalSignature_WrongMessage(t *testing.T) {
	keyHex, address := newTestKey(t)

	sig, err := SignPersonal("login:abc", keyHex)
	require.NoError(t, err)

	err = VerifyPersonalSignature(address, "login:other", sig)
	assert.True(t, errors.Is(err, common.ErrNotAuthorized))
}

func TestVerifyPersonalSignature_Malformed(t *testing.T) {
	_, address := newTestKey(t)

	err := VerifyPersonalSignature(address, "m", "zzzz")
	assert.True(t, errors.Is(err, common.ErrNotAuthorized))

	err = VerifyPersonalSignature(address, "m", "0x0102")
	assert.True(t, errors.Is(err, common.ErrNotAuthorized))
}

func TestNonceStore(t *testing.T) {
	s := NewNonceStore()

	n := s.Issue("0xAA")
	assert.NotEmpty(t, n)

	// wrong nonce consumes the entry
	assert.False(t, s.Consume("0xaa", "wrong"))
	assert.False(t, s.Consume("0xaa", n))

	n2 := s.Issue("0xAA")
	assert.True(t, s.Consume("0xAA", n2))
	// single use
	assert.False(t, s.Consume("0xAA", n2))
}
