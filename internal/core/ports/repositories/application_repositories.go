package repositories

import (
	"context"
	"time"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
)

// ApplicationReader defines read operations for financing application data.
type ApplicationReader interface {
	// FindApplicationByID retrieves a specific application by its unique identifier.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.FinancingApplication, error)

	// ListApplicationsByCustomer retrieves applications belonging to a customer,
	// newest first.
	ListApplicationsByCustomer(ctx context.Context, customerID string, limit int, offset int) ([]domain.FinancingApplication, error)
}

// ApplicationWriter defines write operations for financing application data.
type ApplicationWriter interface {
	// SaveApplication persists a new application.
	SaveApplication(ctx context.Context, app domain.FinancingApplication) error

	// UpdateApplicationStatus moves an application from one status to another
	// with a compare-and-swap on the current status: the write only lands if
	// the application is still in fromStatus, otherwise apperrors.ErrConflict
	// is returned and nothing changes. A non-nil reason is persisted as the
	// blocked reason; a nil reason clears it.
	UpdateApplicationStatus(ctx context.Context, applicationID string, fromStatus, toStatus domain.FinancingStatus, reason *string, updatedAt time.Time) error

	// NextApplicationSequence returns the next value of the application
	// number sequence for the given year.
	NextApplicationSequence(ctx context.Context, year int) (int64, error)
}

// ApplicationRepositoryFacade combines all application repository interfaces.
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}
