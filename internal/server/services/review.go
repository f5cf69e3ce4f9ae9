package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/server/models"
	"github.com/anocare/anocare/internal/server/repositories/repomanager"
)

// ReviewService mutates application status. Approval is a two-step saga:
// mint the credential on-chain first, record the transaction hash, then flip
// pending→approved. A mint whose hash was recorded is never re-run; if the
// flip fails afterwards, ReconcilePending finishes the job at next startup.
type ReviewService struct {
	rm       repomanager.RepositoryManager
	registry chain.Registry
	log      logging.Logger
}

func NewReviewService(rm repomanager.RepositoryManager, registry chain.Registry, log logging.Logger) *ReviewService {
	return &ReviewService{rm: rm, registry: registry, log: log.With("module", "review")}
}

// Approve mints the verified-professional credential and flips the profile
// to approved. If the mint fails, status stays pending and no state changes.
func (s *ReviewService) Approve(ctx context.Context, address string) error {
	address = strings.ToLower(address)
	repo := s.rm.Applicants()

	a, err := repo.GetByAddress(ctx, address)
	if err != nil {
		return err
	}

	switch a.Status {
	case models.StatusApproved:
		return nil // already done, idempotent
	case models.StatusRejected:
		return fmt.Errorf("%w: applicant already rejected", common.ErrValidation)
	}

	if a.MintTx == "" {
		key := uuid.NewString()
		txHash, err := s.registry.Mint(ctx, address, key)
		if err != nil {
			return fmt.Errorf("mint failed: %w", err)
		}

		if err := repo.SetMintTx(ctx, address, txHash); err != nil {
			// The mint landed but we could not record it. Surface the
			// error; the operator must reconcile manually before retrying,
			// since a retry would mint twice.
			s.log.Error(ctx, "mint succeeded but recording failed", "address", address, "tx", txHash)
			return fmt.Errorf("recording mint: %w", err)
		}

		s.log.Info(ctx, "credential minted", "address", address, "tx", txHash, "idempotency_key", key)
	}

	flipped, err := repo.UpdateStatus(ctx, address, models.StatusPending, models.StatusApproved)
	if err != nil {
		return fmt.Errorf("status flip: %w", err)
	}
	if !flipped {
		return fmt.Errorf("%w: applicant no longer pending", common.ErrValidation)
	}

	s.log.Info(ctx, "applicant approved", "address", address)
	return nil
}

// Reject flips pending→rejected. No on-chain effect.
func (s *ReviewService) Reject(ctx context.Context, address string) error {
	address = strings.ToLower(address)
	repo := s.rm.Applicants()

	if _, err := repo.GetByAddress(ctx, address); err != nil {
		return err
	}

	flipped, err := repo.UpdateStatus(ctx, address, models.StatusPending, models.StatusRejected)
	if err != nil {
		return fmt.Errorf("status flip: %w", err)
	}
	if !flipped {
		return fmt.Errorf("%w: applicant no longer pending", common.ErrValidation)
	}

	s.log.Info(ctx, "applicant rejected", "address", address)
	return nil
}

// ReconcilePending finishes approvals interrupted between mint and status
// flip. Runs at startup.
func (s *ReviewService) ReconcilePending(ctx context.Context) error {
	repo := s.rm.Applicants()

	addresses, err := repo.ListMintedPending(ctx)
	if err != nil {
		return fmt.Errorf("reconcile scan: %w", err)
	}

	for _, addr := range addresses {
		flipped, err := repo.UpdateStatus(ctx, addr, models.StatusPending, models.StatusApproved)
		if err != nil {
			s.log.Error(ctx, "reconcile flip failed", "address", addr, "error", err.Error())
			continue
		}
		if flipped {
			s.log.Warn(ctx, "reconciled interrupted approval", "address", addr)
		}
	}

	return nil
}
