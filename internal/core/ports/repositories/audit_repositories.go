package repositories

import (
	"context"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
)

// AuditWriter defines write operations for the audit trail.
type AuditWriter interface {
	// SaveAuditLog appends an audit log entry. Audit failures must not abort
	// the operation being audited; callers log and continue.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditReader defines read operations for the audit trail.
type AuditReader interface {
	ListAuditLogsByFinancingID(ctx context.Context, financingID string) ([]domain.AuditLog, error)
}

// AuditRepositoryFacade combines the audit repository interfaces.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
