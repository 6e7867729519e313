package services

import (
	"context"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
)

// ReviewSvcFacade is the administrative status gateway. It operates on the
// simplified review vocabulary and consults the transition allow-list before
// any mutation; it never exposes the detailed processing statuses.
type ReviewSvcFacade interface {
	// ChangeReviewStatus applies a manually-triggered status change after
	// checking it against the allow-list. Returns apperrors.ErrConflict for
	// an illegal transition.
	ChangeReviewStatus(ctx context.Context, applicationID string, target domain.ReviewStatus, actorID string) (*domain.FinancingApplication, error)
}
