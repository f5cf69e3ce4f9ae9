package auth

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/anocare/anocare/internal/common"
)

// VerifyPersonalSignature checks that sigHex is a valid personal_sign
// signature over message by the claimed address.
func VerifyPersonalSignature(address, message, sigHex string) error {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return fmt.Errorf("%w: malformed signature", common.ErrNotAuthorized)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("%w: bad signature length", common.ErrNotAuthorized)
	}

	// wallets return V as 27/28, go-ethereum expects 0/1
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return fmt.Errorf("%w: signature recovery failed", common.ErrNotAuthorized)
	}

	recovered := crypto.PubkeyToAddress(*pub).Hex()
	if !strings.EqualFold(recovered, address) {
		return fmt.Errorf("%w: signer mismatch", common.ErrNotAuthorized)
	}

	return nil
}

// SignPersonal produces a personal_sign signature over message with the given
// secp256k1 key, in the wallet convention (V as 27/28). Used by the client
// and in tests.
func SignPersonal(message string, keyHex string) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("parse key: %w", err)
	}

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27

	return hexutil.Encode(sig), nil
}
