package repomanager

import (
	"context"

	"github.com/anocare/anocare/internal/server/repositories/applicants"
)

// InMemoryRepositoryManager backs services with the map repository.
// WithinTx is not transactional; tests relying on it accept that.
type InMemoryRepositoryManager struct {
	applicants *applicants.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{applicants: applicants.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Applicants() applicants.Repository {
	return m.applicants
}

func (m *InMemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, r applicants.Repository) error) error {
	return fn(ctx, m.applicants)
}

func (m *InMemoryRepositoryManager) Close() error { return nil }
