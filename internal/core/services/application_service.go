package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/dto"
	"github.com/nadzrin/tawarruq_financing_app/internal/middleware"
)

// fixedProfitRate is the contractual profit rate (p.a.) for this product
// family.
var fixedProfitRate = decimal.NewFromFloat(0.05)

// applicationService provides financing application lifecycle operations up
// to submission; everything after submission belongs to the orchestrator.
type applicationService struct {
	appRepo        portsrepo.ApplicationRepositoryFacade
	tradeRepo      portsrepo.TradeReader
	validationRepo portsrepo.ValidationReader
	auditRepo      portsrepo.AuditReader
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	appRepo portsrepo.ApplicationRepositoryFacade,
	tradeRepo portsrepo.TradeReader,
	validationRepo portsrepo.ValidationReader,
	auditRepo portsrepo.AuditReader,
) portssvc.ApplicationSvcFacade {
	return &applicationService{
		appRepo:        appRepo,
		tradeRepo:      tradeRepo,
		validationRepo: validationRepo,
		auditRepo:      auditRepo,
	}
}

var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

// CreateApplication creates a draft application for a customer.
func (s *applicationService) CreateApplication(ctx context.Context, customerID string, req dto.CreateApplicationRequest) (*domain.FinancingApplication, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PrincipalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: principal amount must be positive", apperrors.ErrValidation)
	}
	if req.TenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure must be a positive number of months", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	seq, err := s.appRepo.NextApplicationSequence(ctx, now.Year())
	if err != nil {
		logger.Error("Failed to allocate application number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to allocate application number: %w", err)
	}

	app := domain.FinancingApplication{
		ApplicationID:     uuid.NewString(),
		ApplicationNumber: fmt.Sprintf("TWQ-%d-%06d", now.Year(), seq),
		CustomerID:        customerID,
		ProductType:       req.ProductType,
		PrincipalAmount:   req.PrincipalAmount,
		ProfitRate:        fixedProfitRate,
		TenureMonths:      req.TenureMonths,
		Status:            domain.StatusDraft,
		ApplicantName:     req.ApplicantName,
		ApplicantIC:       req.ApplicantIC,
		ApplicantPhone:    req.ApplicantPhone,
		ApplicantEmail:    req.ApplicantEmail,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     customerID,
			LastUpdatedAt: now,
			LastUpdatedBy: customerID,
		},
	}

	if err := s.appRepo.SaveApplication(ctx, app); err != nil {
		logger.Error("Failed to save application", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save application: %w", err)
	}

	logger.Info("Application created",
		slog.String("application_id", app.ApplicationID),
		slog.String("application_number", app.ApplicationNumber))
	return &app, nil
}

// SubmitApplication moves a customer's draft to submitted, making it
// eligible for Tawarruq processing.
func (s *applicationService) SubmitApplication(ctx context.Context, applicationID string, customerID string) (*domain.FinancingApplication, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CustomerID != customerID {
		// Obscure existence of other customers' applications.
		return nil, apperrors.ErrNotFound
	}
	if app.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: application status is %s, expected draft", apperrors.ErrConflict, app.Status)
	}

	now := time.Now().UTC()
	if err := s.appRepo.UpdateApplicationStatus(ctx, applicationID, domain.StatusDraft, domain.StatusSubmitted, nil, now); err != nil {
		logger.Error("Failed to submit application", slog.String("error", err.Error()), slog.String("application_id", applicationID))
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	app.Status = domain.StatusSubmitted
	app.LastUpdatedAt = now
	app.LastUpdatedBy = customerID

	logger.Info("Application submitted", slog.String("application_id", applicationID))
	return app, nil
}

// GetApplicationByID retrieves a specific application.
func (s *applicationService) GetApplicationByID(ctx context.Context, applicationID string) (*domain.FinancingApplication, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application %s: %w", applicationID, err)
	}
	return app, nil
}

// ListApplicationsByCustomer retrieves a customer's applications, newest
// first.
func (s *applicationService) ListApplicationsByCustomer(ctx context.Context, customerID string, params dto.ListApplicationsParams) ([]domain.FinancingApplication, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	apps, err := s.appRepo.ListApplicationsByCustomer(ctx, customerID, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListTrades retrieves the trade legs recorded for an application.
func (s *applicationService) ListTrades(ctx context.Context, applicationID string) ([]domain.CommodityTrade, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}
	trades, err := s.tradeRepo.ListTradesByFinancingID(ctx, applicationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// ListValidations retrieves the validation history for an application.
func (s *applicationService) ListValidations(ctx context.Context, applicationID string) ([]domain.ValidationRecord, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}
	records, err := s.validationRepo.ListValidationsByFinancingID(ctx, applicationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to list validations: %w", err)
	}
	return records, nil
}

// ListAuditLogs retrieves the audit trail for an application, oldest first.
func (s *applicationService) ListAuditLogs(ctx context.Context, applicationID string) ([]domain.AuditLog, error) {
	if _, err := s.appRepo.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.ListAuditLogsByFinancingID(ctx, applicationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, nil
}
