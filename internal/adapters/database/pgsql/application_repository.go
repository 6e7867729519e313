package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
)

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new repository for financing
// application data.
func NewApplicationRepository(pool *pgxpool.Pool) portsrepo.ApplicationRepositoryFacade {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `application_id, application_number, customer_id, product_type, principal_amount, profit_rate, tenure_months, status, blocked_reason, applicant_name, applicant_ic, applicant_phone, applicant_email, created_at, created_by, last_updated_at, last_updated_by`

func scanApplication(row pgx.Row) (*domain.FinancingApplication, error) {
	var app domain.FinancingApplication
	err := row.Scan(
		&app.ApplicationID,
		&app.ApplicationNumber,
		&app.CustomerID,
		&app.ProductType,
		&app.PrincipalAmount,
		&app.ProfitRate,
		&app.TenureMonths,
		&app.Status,
		&app.BlockedReason,
		&app.ApplicantName,
		&app.ApplicantIC,
		&app.ApplicantPhone,
		&app.ApplicantEmail,
		&app.CreatedAt,
		&app.CreatedBy,
		&app.LastUpdatedAt,
		&app.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// SaveApplication inserts a new application.
func (r *applicationRepository) SaveApplication(ctx context.Context, app domain.FinancingApplication) error {
	query := `
		INSERT INTO financing_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.pool.Exec(ctx, query,
		app.ApplicationID,
		app.ApplicationNumber,
		app.CustomerID,
		app.ProductType,
		app.PrincipalAmount,
		app.ProfitRate,
		app.TenureMonths,
		app.Status,
		app.BlockedReason,
		app.ApplicantName,
		app.ApplicantIC,
		app.ApplicantPhone,
		app.ApplicantEmail,
		app.CreatedAt,
		app.CreatedBy,
		app.LastUpdatedAt,
		app.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save application %s: %w", app.ApplicationID, err)
	}
	return nil
}

// FindApplicationByID retrieves an application by its ID.
func (r *applicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.FinancingApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM financing_applications
		WHERE application_id = $1;
	`
	app, err := scanApplication(r.pool.QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application by ID %s: %w", applicationID, err)
	}
	return app, nil
}

// ListApplicationsByCustomer retrieves a customer's applications, newest
// first.
func (r *applicationRepository) ListApplicationsByCustomer(ctx context.Context, customerID string, limit int, offset int) ([]domain.FinancingApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM financing_applications
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var apps []domain.FinancingApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application between statuses with a
// compare-and-swap on the current status. Zero rows affected means the
// application is not in fromStatus anymore and the caller lost the race.
func (r *applicationRepository) UpdateApplicationStatus(ctx context.Context, applicationID string, fromStatus, toStatus domain.FinancingStatus, reason *string, updatedAt time.Time) error {
	query := `
		UPDATE financing_applications
		SET status = $1, blocked_reason = $2, last_updated_at = $3
		WHERE application_id = $4 AND status = $5;
	`
	tag, err := r.pool.Exec(ctx, query, toStatus, reason, updatedAt, applicationID, fromStatus)
	if err != nil {
		return fmt.Errorf("failed to update status of application %s: %w", applicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s is no longer in status %s", apperrors.ErrConflict, applicationID, fromStatus)
	}
	return nil
}

// NextApplicationSequence returns the next application number for the given
// year. Sequence rows are created lazily on first use of a year.
func (r *applicationRepository) NextApplicationSequence(ctx context.Context, year int) (int64, error) {
	query := `
		INSERT INTO application_number_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = application_number_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := r.pool.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance application number sequence for %d: %w", year, err)
	}
	return seq, nil
}
