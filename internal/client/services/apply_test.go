package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/pinstore"
	"github.com/anocare/anocare/internal/server/models"
)

var testPepper = []byte("test-pepper")

type fakeSubmitter struct {
	submitted *models.Applicant
	err       error
	// snapshot taken at submit time, to check pin-before-submit ordering
	onSubmit func(a *models.Applicant)
}

func (f *fakeSubmitter) Submit(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	if f.onSubmit != nil {
		f.onSubmit(a)
	}
	if f.err != nil {
		return nil, f.err
	}
	f.submitted = a
	return a, nil
}

func applicationForm() *models.Applicant {
	return &models.Applicant{
		Address:       "0xAA000000000000000000000000000000000000AA",
		Alias:         "DrX",
		Email:         "drx@example.org",
		Specialty:     "cardiology",
		Region:        "EU",
		Experience:    "12",
		Credentials:   "MD-4711",
		LicenseIssuer: "EU Medical Board",
	}
}

func TestApply_ProtectsAndSubmits(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	registry := chain.NewStaticRegistry("0xAdmin1", "0xAdmin2")
	submitter := &fakeSubmitter{}
	svc := NewApplyService(submitter, store, registry, logging.NopLogger{})

	license := []byte("license scan bytes")
	nationalID := []byte("national id scan bytes")

	stored, err := svc.Apply(ctx, applicationForm(), license, nationalID, testPepper)
	require.NoError(t, err)

	require.True(t, stored.LicenseFile.Valid())
	require.True(t, stored.NationalIDFile.Valid())
	assert.NotEqual(t, stored.LicenseFile.CID, stored.NationalIDFile.CID)

	// pinned blobs are ciphertext, not the plaintext
	blob, err := store.Retrieve(ctx, stored.LicenseFile.CID)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "license scan")

	// the key field carries one wrap per admin
	var wrapped map[string]string
	require.NoError(t, json.Unmarshal([]byte(stored.LicenseFile.Key), &wrapped))
	assert.Len(t, wrapped, 2)
	assert.Contains(t, wrapped, "0xadmin1")
	assert.Contains(t, wrapped, "0xadmin2")
}

func TestApply_NoAdmins(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	submitter := &fakeSubmitter{}
	svc := NewApplyService(submitter, store, chain.NewStaticRegistry(), logging.NopLogger{})

	_, err := svc.Apply(ctx, applicationForm(), []byte("a"), []byte("b"), testPepper)
	require.ErrorIs(t, err, common.ErrNoRecipientsAvailable)
	assert.Nil(t, submitter.submitted)
}

func TestApply_PinsBeforeSubmit(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	registry := chain.NewStaticRegistry("0xAdmin1")

	submitter := &fakeSubmitter{}
	submitter.onSubmit = func(a *models.Applicant) {
		// both ciphertexts must already be retrievable when the server call happens
		_, err := store.Retrieve(ctx, a.LicenseFile.CID)
		assert.NoError(t, err)
		_, err = store.Retrieve(ctx, a.NationalIDFile.CID)
		assert.NoError(t, err)
	}

	svc := NewApplyService(submitter, store, registry, logging.NopLogger{})

	_, err := svc.Apply(ctx, applicationForm(), []byte("a"), []byte("b"), testPepper)
	require.NoError(t, err)
}

func TestApply_RoundtripWithReview(t *testing.T) {
	ctx := context.Background()

	store := pinstore.NewMemoryStore()
	registry := chain.NewStaticRegistry("0xAdmin1", "0xAdmin2")
	submitter := &fakeSubmitter{}

	license := []byte("license scan bytes")
	nationalID := []byte("national id scan bytes")

	stored, err := NewApplyService(submitter, store, registry, logging.NopLogger{}).
		Apply(ctx, applicationForm(), license, nationalID, testPepper)
	require.NoError(t, err)

	review := NewReviewService(store, registry, logging.NopLogger{})

	// each admin can independently recover each document
	for _, admin := range []string{"0xAdmin1", "0xAdmin2"} {
		got, err := review.DecryptDocument(ctx, stored.LicenseFile, admin, testPepper)
		require.NoError(t, err)
		assert.Equal(t, license, got)

		got, err = review.DecryptDocument(ctx, stored.NationalIDFile, admin, testPepper)
		require.NoError(t, err)
		assert.Equal(t, nationalID, got)
	}
}
