// Package services contains server-side business logic for the applicant
// workflow: submission, listing, status lookup, and the approve/reject saga.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/server/models"
	"github.com/anocare/anocare/internal/server/repositories/applicants"
	"github.com/anocare/anocare/internal/server/repositories/repomanager"
)

type ApplicationService struct {
	rm  repomanager.RepositoryManager
	log logging.Logger
}

func NewApplicationService(rm repomanager.RepositoryManager, log logging.Logger) *ApplicationService {
	return &ApplicationService{rm: rm, log: log.With("module", "applications")}
}

// Submit validates and persists a new applicant profile with status=pending.
// The check-and-insert runs in one transaction; the unique constraint on
// address is the backstop against concurrent submissions for the same wallet.
// A duplicate submission is rejected without touching the stored record.
func (s *ApplicationService) Submit(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	a.Address = strings.ToLower(strings.TrimSpace(a.Address))

	if err := validateSubmission(a); err != nil {
		return nil, err
	}

	a.ID = uuid.NewString()
	a.Status = models.StatusPending
	a.IsActive = false
	a.MintTx = ""

	err := s.rm.WithinTx(ctx, func(ctx context.Context, r applicants.Repository) error {
		if _, err := r.GetByAddress(ctx, a.Address); err == nil {
			return common.ErrDuplicate
		}

		_, err := r.Create(ctx, a)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "application submitted", "address", a.Address, "alias", a.Alias)
	return a, nil
}

func validateSubmission(a *models.Applicant) error {
	required := map[string]string{
		"address":       a.Address,
		"alias":         a.Alias,
		"email":         a.Email,
		"specialty":     a.Specialty,
		"region":        a.Region,
		"experience":    a.Experience,
		"credentials":   a.Credentials,
		"licenseIssuer": a.LicenseIssuer,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
		}
	}

	if !a.LicenseFile.Valid() {
		return fmt.Errorf("%w: licenseFile must carry cid and key", common.ErrValidation)
	}
	if !a.NationalIDFile.Valid() {
		return fmt.Errorf("%w: nationalIdFile must carry cid and key", common.ErrValidation)
	}

	return nil
}

// List returns every stored profile. An empty result is a valid state, not
// an error.
func (s *ApplicationService) List(ctx context.Context) ([]*models.Applicant, error) {
	return s.rm.Applicants().List(ctx)
}

// ListPending returns profiles awaiting review.
func (s *ApplicationService) ListPending(ctx context.Context) ([]*models.Applicant, error) {
	return s.rm.Applicants().ListByStatus(ctx, models.StatusPending)
}

// GetStatus returns the application status for dashboard gating.
func (s *ApplicationService) GetStatus(ctx context.Context, address string) (models.ApplicationStatus, error) {
	a, err := s.rm.Applicants().GetByAddress(ctx, strings.ToLower(address))
	if err != nil {
		return "", err
	}
	return a.Status, nil
}

// ToggleActive flips the availability flag, independent of approval status.
func (s *ApplicationService) ToggleActive(ctx context.Context, address string) (*models.Applicant, error) {
	return s.rm.Applicants().ToggleActive(ctx, strings.ToLower(address))
}
