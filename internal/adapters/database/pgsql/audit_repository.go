package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
)

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new repository for audit log entries.
func NewAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &auditRepository{pool: pool}
}

// SaveAuditLog appends an audit log entry.
func (r *auditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details for %s: %w", entry.AuditID, err)
		}
	}

	query := `
		INSERT INTO audit_logs (audit_id, financing_id, action, actor_id, actor_type, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.AuditID,
		entry.FinancingID,
		entry.Action,
		entry.ActorID,
		entry.ActorType,
		details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log %s: %w", entry.AuditID, err)
	}
	return nil
}

// ListAuditLogsByFinancingID retrieves an application's audit trail, oldest
// first.
func (r *auditRepository) ListAuditLogsByFinancingID(ctx context.Context, financingID string) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_id, financing_id, action, actor_id, actor_type, details, created_at
		FROM audit_logs
		WHERE financing_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, financingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs for financing %s: %w", financingID, err)
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var details []byte
		err := rows.Scan(
			&entry.AuditID,
			&entry.FinancingID,
			&entry.Action,
			&entry.ActorID,
			&entry.ActorType,
			&details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit details for %s: %w", entry.AuditID, err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", err)
	}
	return entries, nil
}
