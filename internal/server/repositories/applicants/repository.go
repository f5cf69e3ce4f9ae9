package applicants

import (
	"context"

	"github.com/anocare/anocare/internal/server/models"
)

// Repository persists applicant profiles. Status mutations are guarded
// transitions: UpdateStatus only moves a row out of the expected current
// status and reports whether a row actually changed.
type Repository interface {
	Create(ctx context.Context, a *models.Applicant) (*models.Applicant, error)
	GetByAddress(ctx context.Context, address string) (*models.Applicant, error)
	List(ctx context.Context) ([]*models.Applicant, error)
	ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]*models.Applicant, error)

	UpdateStatus(ctx context.Context, address string, from, to models.ApplicationStatus) (bool, error)
	SetMintTx(ctx context.Context, address, txHash string) error
	ToggleActive(ctx context.Context, address string) (*models.Applicant, error)

	// ListMintedPending returns addresses with a recorded mint transaction
	// whose status flip did not land (interrupted approvals).
	ListMintedPending(ctx context.Context) ([]string, error)
}
