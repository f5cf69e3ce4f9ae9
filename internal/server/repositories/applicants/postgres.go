package applicants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/dbx"
	"github.com/anocare/anocare/internal/server/models"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const applicantColumns = `id, address, alias, email, specialty, region, message,
	experience, credentials, license_issuer,
	license_cid, license_key, national_id_cid, national_id_key,
	status, is_active, mint_tx, created_at, updated_at`

func scanApplicant(row interface{ Scan(...any) error }) (*models.Applicant, error) {
	a := &models.Applicant{}
	err := row.Scan(
		&a.ID, &a.Address, &a.Alias, &a.Email, &a.Specialty, &a.Region, &a.Message,
		&a.Experience, &a.Credentials, &a.LicenseIssuer,
		&a.LicenseFile.CID, &a.LicenseFile.Key, &a.NationalIDFile.CID, &a.NationalIDFile.Key,
		&a.Status, &a.IsActive, &a.MintTx, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	query := `INSERT INTO applicants
		(id, address, alias, email, specialty, region, message,
		 experience, credentials, license_issuer,
		 license_cid, license_key, national_id_cid, national_id_key,
		 status, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.Address, a.Alias, a.Email, a.Specialty, a.Region, a.Message,
		a.Experience, a.Credentials, a.LicenseIssuer,
		a.LicenseFile.CID, a.LicenseFile.Key, a.NationalIDFile.CID, a.NationalIDFile.Key,
		a.Status, a.IsActive).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrDuplicate
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByAddress(ctx context.Context, address string) (*models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE address = $1`

	a, err := scanApplicant(r.db.QueryRowContext(ctx, query, address))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants ORDER BY created_at`
	return r.queryList(ctx, query)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]*models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE status = $1 ORDER BY created_at`
	return r.queryList(ctx, query, status)
}

func (r *PostgresRepository) queryList(ctx context.Context, query string, args ...any) ([]*models.Applicant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Applicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, address string, from, to models.ApplicationStatus) (bool, error) {
	query := `UPDATE applicants SET status = $3, updated_at = now()
		 WHERE address = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, query, address, from, to)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n == 1, nil
}

func (r *PostgresRepository) SetMintTx(ctx context.Context, address, txHash string) error {
	query := `UPDATE applicants SET mint_tx = $2, updated_at = now() WHERE address = $1`

	res, err := r.db.ExecContext(ctx, query, address, txHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) ToggleActive(ctx context.Context, address string) (*models.Applicant, error) {
	query := `UPDATE applicants SET is_active = NOT is_active, updated_at = now()
		 WHERE address = $1
		 RETURNING ` + applicantColumns

	a, err := scanApplicant(r.db.QueryRowContext(ctx, query, address))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) ListMintedPending(ctx context.Context) ([]string, error) {
	query := `SELECT address FROM applicants WHERE status = 'pending' AND mint_tx <> ''`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return addresses, nil
}
