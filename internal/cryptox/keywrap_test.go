package cryptox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/logging"
)

var testPepper = []byte("unit-test-pepper")

func TestDeriveRecipientKeyPair_Deterministic(t *testing.T) {
	kp1, err := DeriveRecipientKeyPair("0xAbCd", testPepper)
	require.NoError(t, err)

	// case-normalized: checksummed and lowercase forms derive the same pair
	kp2, err := DeriveRecipientKeyPair("0xabcd", testPepper)
	require.NoError(t, err)
	assert.Equal(t, kp1.Public, kp2.Public)
	assert.Equal(t, kp1.Private, kp2.Private)

	kp3, err := DeriveRecipientKeyPair("0xabcd", []byte("other-pepper"))
	require.NoError(t, err)
	assert.NotEqual(t, kp1.Public, kp3.Public)

	kp4, err := DeriveRecipientKeyPair("0xother", testPepper)
	require.NoError(t, err)
	assert.NotEqual(t, kp1.Public, kp4.Public)
}

func TestDeriveRecipientKeyPair_EmptyIdentity(t *testing.T) {
	_, err := DeriveRecipientKeyPair("", testPepper)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	symKey := GenerateKey()

	wrapped, err := WrapKeyForRecipient(symKey, "0xAA11", testPepper)
	require.NoError(t, err)

	kp, err := DeriveRecipientKeyPair("0xaa11", testPepper)
	require.NoError(t, err)

	got, err := UnwrapKey(wrapped, kp)
	require.NoError(t, err)
	assert.Equal(t, symKey, got)
}

func TestUnwrap_WrongRecipient(t *testing.T) {
	symKey := GenerateKey()

	wrapped, err := WrapKeyForRecipient(symKey, "0xAA11", testPepper)
	require.NoError(t, err)

	other, err := DeriveRecipientKeyPair("0xBB22", testPepper)
	require.NoError(t, err)

	_, err = UnwrapKey(wrapped, other)
	assert.True(t, errors.Is(err, common.ErrDecryptionFailure))
}

func TestUnwrap_NotBase64(t *testing.T) {
	kp, err := DeriveRecipientKeyPair("0xAA11", testPepper)
	require.NoError(t, err)

	_, err = UnwrapKey("%%% not base64 %%%", kp)
	assert.True(t, errors.Is(err, common.ErrDecryptionFailure))
}

func TestWrapKeyForAllAdmins(t *testing.T) {
	ctx := context.Background()
	symKey := GenerateKey()
	admins := []string{"0xAdmin1", "0xAdmin2"}

	wrapped, err := WrapKeyForAllAdmins(ctx, symKey, admins, testPepper, logging.NopLogger{})
	require.NoError(t, err)
	require.Len(t, wrapped, 2)

	// every admin can unwrap their own entry independently
	for _, admin := range []string{"0xadmin1", "0xadmin2"} {
		kp, err := DeriveRecipientKeyPair(admin, testPepper)
		require.NoError(t, err)

		got, err := UnwrapKey(wrapped[admin], kp)
		require.NoError(t, err)
		assert.Equal(t, symKey, got)
	}
}

func TestWrapKeyForAllAdmins_SkipsBadRecipients(t *testing.T) {
	ctx := context.Background()
	symKey := GenerateKey()

	wrapped, err := WrapKeyForAllAdmins(ctx, symKey, []string{"", "0xGood"}, testPepper, logging.NopLogger{})
	require.NoError(t, err)
	assert.Len(t, wrapped, 1)
	assert.Contains(t, wrapped, "0xgood")
}

func TestWrapKeyForAllAdmins_NoRecipients(t *testing.T) {
	ctx := context.Background()

	_, err := WrapKeyForAllAdmins(ctx, GenerateKey(), nil, testPepper, logging.NopLogger{})
	assert.True(t, errors.Is(err, common.ErrNoRecipientsAvailable))

	_, err = WrapKeyForAllAdmins(ctx, GenerateKey(), []string{""}, testPepper, logging.NopLogger{})
	assert.True(t, errors.Is(err, common.ErrNoRecipientsAvailable))
}
