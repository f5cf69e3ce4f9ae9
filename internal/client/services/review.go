package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/cryptox"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/pinstore"
	"github.com/anocare/anocare/internal/server/models"
)

// ReviewService recovers plaintext documents for authorized reviewers.
type ReviewService struct {
	store    pinstore.Store
	registry chain.Registry
	log      logging.Logger
}

func NewReviewService(store pinstore.Store, registry chain.Registry, log logging.Logger) *ReviewService {
	return &ReviewService{
		store:    store,
		registry: registry,
		log:      log.With("module", "review"),
	}
}

// wrappedKeyFor extracts the wrap addressed to caller. The key field is
// either a JSON map of admin address to wrap, or a single bare wrap.
func wrappedKeyFor(keyField, caller string) (string, error) {
	var perAdmin map[string]string
	if err := json.Unmarshal([]byte(keyField), &perAdmin); err != nil {
		// not a map: treat the whole field as a single wrap
		return keyField, nil
	}

	w, ok := perAdmin[strings.ToLower(caller)]
	if !ok {
		return "", fmt.Errorf("%w: no wrapped key for %s", common.ErrDecryptionFailure, caller)
	}
	return w, nil
}

// DecryptDocument checks the caller's privilege on-chain, fetches the pinned
// ciphertext and unwraps it with the caller's derived key pair. The privilege
// check comes first: an unauthorized caller causes no fetch at all.
func (s *ReviewService) DecryptDocument(ctx context.Context, doc models.ProtectedDocument, caller string, pepper []byte) ([]byte, error) {
	if !doc.Valid() {
		return nil, fmt.Errorf("%w: incomplete document reference", common.ErrValidation)
	}

	isAdmin, err := s.registry.IsAdmin(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("admin check: %w", err)
	}
	if !isAdmin {
		return nil, fmt.Errorf("%w: %s is not an admin", common.ErrNotAuthorized, caller)
	}

	blob, err := s.store.Retrieve(ctx, doc.CID)
	if err != nil {
		return nil, err
	}

	wrapped, err := wrappedKeyFor(doc.Key, caller)
	if err != nil {
		return nil, err
	}

	kp, err := cryptox.DeriveRecipientKeyPair(caller, pepper)
	if err != nil {
		return nil, err
	}

	key, err := cryptox.UnwrapKey(wrapped, kp)
	if err != nil {
		return nil, err
	}
	defer cryptox.Wipe(key)

	plaintext, err := cryptox.OpenBlob(blob, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptionFailure, err)
	}

	s.log.Info(ctx, "document decrypted", "cid", doc.CID, "caller", strings.ToLower(caller))

	return plaintext, nil
}
