package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/cryptox"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/pinstore"
	"github.com/anocare/anocare/internal/server/models"
)

// recordingStore counts retrievals so tests can assert no fetch happened.
type recordingStore struct {
	pinstore.Store
	retrievals int
}

func (r *recordingStore) Retrieve(ctx context.Context, c string) ([]byte, error) {
	r.retrievals++
	return r.Store.Retrieve(ctx, c)
}

func protectedFixture(t *testing.T, ctx context.Context, store pinstore.Store, plaintext []byte, admins ...string) models.ProtectedDocument {
	t.Helper()

	key := cryptox.GenerateKey()
	blob, err := cryptox.SealBlob(plaintext, key)
	require.NoError(t, err)

	wrapped, err := cryptox.WrapKeyForAllAdmins(ctx, key, admins, testPepper, logging.NopLogger{})
	require.NoError(t, err)
	keyJSON, err := json.Marshal(wrapped)
	require.NoError(t, err)

	c, err := store.Pin(ctx, blob)
	require.NoError(t, err)

	return models.ProtectedDocument{CID: c, Key: string(keyJSON)}
}

func TestDecryptDocument_NotAdmin_NoFetch(t *testing.T) {
	ctx := context.Background()

	store := &recordingStore{Store: pinstore.NewMemoryStore()}
	registry := chain.NewStaticRegistry("0xAdmin1")
	doc := protectedFixture(t, ctx, store, []byte("secret"), "0xAdmin1")

	svc := NewReviewService(store, registry, logging.NopLogger{})

	_, err := svc.DecryptDocument(ctx, doc, "0xIntruder", testPepper)
	require.ErrorIs(t, err, common.ErrNotAuthorized)

	// the privilege check must short-circuit before any retrieval
	assert.Zero(t, store.retrievals)
}

func TestDecryptDocument_AdminWithoutWrap(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	// admin2 holds privilege but the document was wrapped only for admin1
	registry := chain.NewStaticRegistry("0xAdmin1", "0xAdmin2")
	doc := protectedFixture(t, ctx, store, []byte("secret"), "0xAdmin1")

	svc := NewReviewService(store, registry, logging.NopLogger{})

	_, err := svc.DecryptDocument(ctx, doc, "0xAdmin2", testPepper)
	require.ErrorIs(t, err, common.ErrDecryptionFailure)
}

func TestDecryptDocument_SingleWrapKeyField(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	registry := chain.NewStaticRegistry("0xAdmin1")

	plaintext := []byte("secret")
	key := cryptox.GenerateKey()
	blob, err := cryptox.SealBlob(plaintext, key)
	require.NoError(t, err)

	wrap, err := cryptox.WrapKeyForRecipient(key, "0xAdmin1", testPepper)
	require.NoError(t, err)

	c, err := store.Pin(ctx, blob)
	require.NoError(t, err)

	svc := NewReviewService(store, registry, logging.NopLogger{})

	got, err := svc.DecryptDocument(ctx, models.ProtectedDocument{CID: c, Key: wrap}, "0xAdmin1", testPepper)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptDocument_WrongPepper(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	registry := chain.NewStaticRegistry("0xAdmin1")
	doc := protectedFixture(t, ctx, store, []byte("secret"), "0xAdmin1")

	svc := NewReviewService(store, registry, logging.NopLogger{})

	_, err := svc.DecryptDocument(ctx, doc, "0xAdmin1", []byte("other-pepper"))
	require.ErrorIs(t, err, common.ErrDecryptionFailure)
}

func TestDecryptDocument_MissingCiphertext(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	registry := chain.NewStaticRegistry("0xAdmin1")

	svc := NewReviewService(store, registry, logging.NopLogger{})

	doc := models.ProtectedDocument{CID: "bafynope", Key: "irrelevant"}
	_, err := svc.DecryptDocument(ctx, doc, "0xAdmin1", testPepper)
	require.ErrorIs(t, err, common.ErrRetrievalFailure)
}

func TestDecryptDocument_IncompleteReference(t *testing.T) {
	ctx := context.Background()

	svc := NewReviewService(pinstore.NewMemoryStore(), chain.NewStaticRegistry("0xAdmin1"), logging.NopLogger{})

	_, err := svc.DecryptDocument(ctx, models.ProtectedDocument{CID: "bafy"}, "0xAdmin1", testPepper)
	require.ErrorIs(t, err, common.ErrValidation)
}
