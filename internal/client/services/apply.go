// Package services implements the client-side workflows: protecting and
// submitting application documents, and reviewing them as an admin.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/cryptox"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/pinstore"
	"github.com/anocare/anocare/internal/server/models"
)

// Submitter is the backend call the apply flow finishes with.
type Submitter interface {
	Submit(ctx context.Context, a *models.Applicant) (*models.Applicant, error)
}

// ApplyService protects an applicant's documents and files the application.
// Plaintext never leaves the process: each file is encrypted under a one-time
// key, the key is wrapped for every current admin, and only the ciphertext is
// pinned.
type ApplyService struct {
	api      Submitter
	store    pinstore.Store
	registry chain.Registry
	log      logging.Logger
}

func NewApplyService(api Submitter, store pinstore.Store, registry chain.Registry, log logging.Logger) *ApplyService {
	return &ApplyService{
		api:      api,
		store:    store,
		registry: registry,
		log:      log.With("module", "apply"),
	}
}

// protect encrypts one file, wraps its key for the given admins and pins the
// ciphertext. The returned reference carries the CID and the JSON-encoded
// map of per-admin wrapped keys.
func (s *ApplyService) protect(ctx context.Context, plaintext []byte, admins []string, pepper []byte) (models.ProtectedDocument, error) {
	var doc models.ProtectedDocument

	key := cryptox.GenerateKey()
	defer cryptox.Wipe(key)

	blob, err := cryptox.SealBlob(plaintext, key)
	if err != nil {
		return doc, fmt.Errorf("encrypt document: %w", err)
	}

	wrapped, err := cryptox.WrapKeyForAllAdmins(ctx, key, admins, pepper, s.log)
	if err != nil {
		return doc, err
	}

	keyJSON, err := json.Marshal(wrapped)
	if err != nil {
		return doc, fmt.Errorf("encode wrapped keys: %w", err)
	}

	c, err := s.store.Pin(ctx, blob)
	if err != nil {
		return doc, err
	}

	doc.CID = c
	doc.Key = string(keyJSON)
	return doc, nil
}

// Apply protects both identity documents and submits the application. Both
// uploads must succeed before anything is sent to the server, so a stored
// application never references missing ciphertext.
func (s *ApplyService) Apply(ctx context.Context, form *models.Applicant, license, nationalID, pepper []byte) (*models.Applicant, error) {
	admins, err := s.registry.Admins(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin set: %w", err)
	}
	if len(admins) == 0 {
		return nil, common.ErrNoRecipientsAvailable
	}

	licenseDoc, err := s.protect(ctx, license, admins, pepper)
	if err != nil {
		return nil, fmt.Errorf("license document: %w", err)
	}

	idDoc, err := s.protect(ctx, nationalID, admins, pepper)
	if err != nil {
		return nil, fmt.Errorf("national id document: %w", err)
	}

	form.LicenseFile = licenseDoc
	form.NationalIDFile = idDoc

	stored, err := s.api.Submit(ctx, form)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "application submitted",
		"address", stored.Address,
		"license_cid", licenseDoc.CID,
		"national_id_cid", idDoc.CID,
	)

	return stored, nil
}
