package repositories

import (
	"context"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
)

// ValidationReader defines read operations for persisted validation records.
type ValidationReader interface {
	// ListValidationsByFinancingID retrieves the append-only validation
	// history for an application, oldest first.
	ListValidationsByFinancingID(ctx context.Context, financingID string) ([]domain.ValidationRecord, error)
}

// ValidationWriter defines write operations for persisted validation records.
type ValidationWriter interface {
	// SaveValidationAndBlock appends a failing validation record and moves the
	// owning application to blocked with the given reason, inside a single
	// database transaction.
	SaveValidationAndBlock(ctx context.Context, record domain.ValidationRecord, reason string) error
}

// ValidationRepositoryFacade combines all validation repository interfaces.
type ValidationRepositoryFacade interface {
	ValidationReader
	ValidationWriter
}
