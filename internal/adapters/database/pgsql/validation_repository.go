package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
)

type validationRepository struct {
	pool *pgxpool.Pool
}

// NewValidationRepository creates a new repository for validation records.
func NewValidationRepository(pool *pgxpool.Pool) portsrepo.ValidationRepositoryFacade {
	return &validationRepository{pool: pool}
}

const validationColumns = `validation_id, financing_id, validation_type, result, details, validator_version, validated_at`

// insertValidation appends a validation record using the given query
// executor. It is shared with the trade repository, which writes trade and
// validation rows in one transaction.
func insertValidation(ctx context.Context, tx pgx.Tx, record domain.ValidationRecord) error {
	query := `
		INSERT INTO validation_records (` + validationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		record.ValidationID,
		record.FinancingID,
		record.ValidationType,
		record.Result,
		record.Details,
		record.ValidatorVersion,
		record.ValidatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert validation record %s: %w", record.ValidationID, err)
	}
	return nil
}

// SaveValidationAndBlock appends a failing validation record and moves the
// owning application to blocked, within a single DB transaction.
func (r *validationRepository) SaveValidationAndBlock(ctx context.Context, record domain.ValidationRecord, reason string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	if err := insertValidation(ctx, tx, record); err != nil {
		return err
	}

	// No CAS here: whatever intermediate status the application is in, a
	// failed validation always lands it in blocked.
	statusQuery := `
		UPDATE financing_applications
		SET status = $1, blocked_reason = $2, last_updated_at = $3
		WHERE application_id = $4;
	`
	tag, err := tx.Exec(ctx, statusQuery, domain.StatusBlocked, reason, time.Now().UTC(), record.FinancingID)
	if err != nil {
		return fmt.Errorf("failed to block application %s: %w", record.FinancingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s", apperrors.ErrNotFound, record.FinancingID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit validation block for application %s: %w", record.FinancingID, err)
	}
	return nil
}

// ListValidationsByFinancingID retrieves an application's validation
// history, oldest first.
func (r *validationRepository) ListValidationsByFinancingID(ctx context.Context, financingID string) ([]domain.ValidationRecord, error) {
	query := `
		SELECT ` + validationColumns + `
		FROM validation_records
		WHERE financing_id = $1
		ORDER BY validated_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, financingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation records for financing %s: %w", financingID, err)
	}
	defer rows.Close()

	var records []domain.ValidationRecord
	for rows.Next() {
		var rec domain.ValidationRecord
		err := rows.Scan(
			&rec.ValidationID,
			&rec.FinancingID,
			&rec.ValidationType,
			&rec.Result,
			&rec.Details,
			&rec.ValidatorVersion,
			&rec.ValidatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan validation record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating validation record rows: %w", err)
	}
	return records, nil
}

var _ portsrepo.ValidationRepositoryFacade = (*validationRepository)(nil)
