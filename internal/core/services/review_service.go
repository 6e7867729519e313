package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/middleware"
)

// reviewService is the administrative status gateway. It works exclusively
// in the simplified review vocabulary and refuses to touch applications that
// are mid-Tawarruq processing.
type reviewService struct {
	appRepo   portsrepo.ApplicationRepositoryFacade
	auditRepo portsrepo.AuditWriter
}

// NewReviewService creates a new ReviewService.
func NewReviewService(appRepo portsrepo.ApplicationRepositoryFacade, auditRepo portsrepo.AuditWriter) portssvc.ReviewSvcFacade {
	return &reviewService{appRepo: appRepo, auditRepo: auditRepo}
}

var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

// inFlight reports whether the orchestrator currently owns the application.
// Administrative review must not race a processing step.
func inFlight(s domain.FinancingStatus) bool {
	switch s {
	case domain.StatusT1Pending, domain.StatusT1Validated, domain.StatusT2Pending, domain.StatusT2Validated:
		return true
	}
	return false
}

// ChangeReviewStatus applies a manually-triggered status change after
// consulting the transition allow-list.
func (s *reviewService) ChangeReviewStatus(ctx context.Context, applicationID string, target domain.ReviewStatus, actorID string) (*domain.FinancingApplication, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if inFlight(app.Status) {
		return nil, fmt.Errorf("%w: application is being processed (status %s)", apperrors.ErrConflict, app.Status)
	}

	current := domain.ReviewStatusFor(app.Status)
	if !domain.IsReviewTransitionAllowed(current, target) {
		return nil, fmt.Errorf("%w: cannot change status from %s to %s", apperrors.ErrConflict, current, target)
	}

	newStatus := domain.FinancingStatusFor(target)
	var reason *string
	if target == domain.ReviewRejected {
		r := "Rejected by administrator"
		reason = &r
	}

	now := time.Now().UTC()
	if err := s.appRepo.UpdateApplicationStatus(ctx, applicationID, app.Status, newStatus, reason, now); err != nil {
		logger.Error("Failed to apply review status change",
			slog.String("application_id", applicationID),
			slog.String("target", string(target)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to apply status change: %w", err)
	}

	entry := domain.AuditLog{
		AuditID:     uuid.NewString(),
		FinancingID: applicationID,
		Action:      "REVIEW_STATUS_CHANGED",
		ActorID:     actorID,
		ActorType:   domain.ActorUser,
		Details: map[string]any{
			"from": current,
			"to":   target,
		},
		CreatedAt: now,
	}
	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		logger.Warn("Failed to append review audit log", slog.String("error", err.Error()))
	}

	app.Status = newStatus
	app.BlockedReason = reason
	app.LastUpdatedAt = now
	app.LastUpdatedBy = actorID

	logger.Info("Review status changed",
		slog.String("application_id", applicationID),
		slog.String("from", string(current)),
		slog.String("to", string(target)))
	return app, nil
}
