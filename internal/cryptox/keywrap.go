package cryptox

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/box"

	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/logging"
)

// KeyPair is a recipient's asymmetric key pair, deterministically derivable
// from the recipient's wallet address plus an operator-held pepper.
//
// Anyone holding the pepper can reconstruct any recipient's private half, so
// confidentiality rests on keeping the pepper secret. This mirrors the
// source system's derivation scheme and is NOT a substitute for recipient-
// registered public keys.
type KeyPair struct {
	Public  *[32]byte
	Private *[32]byte
}

// DeriveRecipientKeyPair derives a deterministic X25519 key pair for the
// given identity. The same identity and pepper always yield the same pair;
// the identity is case-normalized first so checksummed and lowercase forms
// of an address derive identically.
func DeriveRecipientKeyPair(identity string, pepper []byte) (*KeyPair, error) {
	if identity == "" {
		return nil, fmt.Errorf("%w: empty recipient identity", common.ErrValidation)
	}

	seed := argon2.IDKey([]byte(strings.ToLower(identity)), pepper, 1, 64*1024, 4, 32)

	pub, priv, err := box.GenerateKey(bytes.NewReader(seed))
	if err != nil {
		return nil, fmt.Errorf("keypair derivation: %w", err)
	}
	Wipe(seed)

	return &KeyPair{Public: pub, Private: priv}, nil
}

// WrapKeyForRecipient seals the symmetric key to the recipient's derived
// public key using an anonymous sealed box and returns it base64-encoded.
func WrapKeyForRecipient(symmetricKey []byte, identity string, pepper []byte) (string, error) {
	kp, err := DeriveRecipientKeyPair(identity, pepper)
	if err != nil {
		return "", err
	}

	sealed, err := box.SealAnonymous(nil, symmetricKey, kp.Public, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("seal for %s: %w", identity, err)
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// UnwrapKey recovers the symmetric key from a base64 wrapped key using the
// recipient's key pair. Any tampering or wrong-recipient attempt surfaces as
// common.ErrDecryptionFailure.
func UnwrapKey(wrapped string, kp *KeyPair) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: wrapped key is not base64", common.ErrDecryptionFailure)
	}

	key, ok := box.OpenAnonymous(nil, sealed, kp.Public, kp.Private)
	if !ok {
		return nil, fmt.Errorf("%w: sealed box did not open", common.ErrDecryptionFailure)
	}

	return key, nil
}

// WrapKeyForAllAdmins wraps the same one-time symmetric key independently for
// every admin so any single reviewer can unwrap without coordinating with the
// others. Per-recipient failures are logged and skipped; the call fails with
// common.ErrNoRecipientsAvailable only when not a single wrap succeeded.
func WrapKeyForAllAdmins(ctx context.Context, symmetricKey []byte, admins []string, pepper []byte, log logging.Logger) (map[string]string, error) {
	wrapped := make(map[string]string, len(admins))

	for _, admin := range admins {
		w, err := WrapKeyForRecipient(symmetricKey, admin, pepper)
		if err != nil {
			log.Warn(ctx, "key wrap failed for admin", "admin", admin, "error", err.Error())
			continue
		}
		wrapped[strings.ToLower(admin)] = w
	}

	if len(wrapped) == 0 {
		return nil, common.ErrNoRecipientsAvailable
	}

	return wrapped, nil
}
