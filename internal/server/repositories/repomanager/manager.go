// Package repomanager wires repositories to their storage backend and owns
// transaction boundaries, so services stay storage-agnostic.
package repomanager

import (
	"context"

	"github.com/anocare/anocare/internal/server/repositories/applicants"
)

type RepositoryManager interface {
	Applicants() applicants.Repository

	// WithinTx runs fn against a transactional repository handle,
	// committing on success and rolling back on error.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r applicants.Repository) error) error

	Close() error
}
