package applicants

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests.
type InMemoryRepository struct {
	mu      sync.Mutex
	byAddr  map[string]*models.Applicant
	aliases map[string]struct{}
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byAddr:  make(map[string]*models.Applicant),
		aliases: make(map[string]struct{}),
	}
}

func clone(a *models.Applicant) *models.Applicant {
	cp := *a
	return &cp
}

func (r *InMemoryRepository) Create(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byAddr[a.Address]; exists {
		return nil, common.ErrDuplicate
	}
	if _, exists := r.aliases[a.Alias]; exists {
		return nil, common.ErrDuplicate
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	r.byAddr[a.Address] = clone(a)
	r.aliases[a.Alias] = struct{}{}

	return a, nil
}

func (r *InMemoryRepository) GetByAddress(ctx context.Context, address string) (*models.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byAddr[address]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(a), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.Applicant, error) {
	return r.list(func(*models.Applicant) bool { return true })
}

func (r *InMemoryRepository) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]*models.Applicant, error) {
	return r.list(func(a *models.Applicant) bool { return a.Status == status })
}

func (r *InMemoryRepository) list(keep func(*models.Applicant) bool) ([]*models.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*models.Applicant{}
	for _, a := range r.byAddr {
		if keep(a) {
			result = append(result, clone(a))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })

	return result, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, address string, from, to models.ApplicationStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byAddr[address]
	if !ok || a.Status != from {
		return false, nil
	}

	a.Status = to
	a.UpdatedAt = time.Now()
	return true, nil
}

func (r *InMemoryRepository) SetMintTx(ctx context.Context, address, txHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byAddr[address]
	if !ok {
		return common.ErrNotFound
	}

	a.MintTx = txHash
	a.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) ToggleActive(ctx context.Context, address string) (*models.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byAddr[address]
	if !ok {
		return nil, common.ErrNotFound
	}

	a.IsActive = !a.IsActive
	a.UpdatedAt = time.Now()
	return clone(a), nil
}

func (r *InMemoryRepository) ListMintedPending(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var addresses []string
	for _, a := range r.byAddr {
		if a.Status == models.StatusPending && a.MintTx != "" {
			addresses = append(addresses, a.Address)
		}
	}
	return addresses, nil
}
