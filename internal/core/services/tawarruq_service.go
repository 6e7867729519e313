package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/dto"
	"github.com/nadzrin/tawarruq_financing_app/internal/middleware"
	"github.com/nadzrin/tawarruq_financing_app/internal/platform/lock"
)

const (
	blockedReasonT1Validation = "T1 validation failed"
	blockedReasonT1Processing = "T1 processing error"
	blockedReasonT2Processing = "T2 processing error"

	defaultLockTTL = 30 * time.Second
)

// TawarruqConfig carries the explicit configuration the orchestrator needs.
// Values are injected at construction; nothing is read from ambient state at
// call time.
type TawarruqConfig struct {
	// BankName is the identity that must appear as buyer on every T1 leg.
	BankName string
	// SettlementPause is the delay between T1 and T2 in the full flow,
	// modelling settlement latency between the two legs.
	SettlementPause time.Duration
	// LockTTL bounds how long a processing lock may be held.
	LockTTL time.Duration
}

// tawarruqService drives applications through the Tawarruq state machine:
// submitted -> t1_pending -> t1_validated -> t2_pending -> t2_validated ->
// approved, with blocked as the terminal failure state.
type tawarruqService struct {
	appRepo        portsrepo.ApplicationRepositoryFacade
	tradeRepo      portsrepo.TradeRepositoryFacade
	validationRepo portsrepo.ValidationRepositoryFacade
	auditRepo      portsrepo.AuditWriter
	venue          portssvc.VenueClient
	validator      *ValidationService
	locker         lock.Locker
	cfg            TawarruqConfig
}

// NewTawarruqService creates the Tawarruq process orchestrator.
func NewTawarruqService(
	appRepo portsrepo.ApplicationRepositoryFacade,
	tradeRepo portsrepo.TradeRepositoryFacade,
	validationRepo portsrepo.ValidationRepositoryFacade,
	auditRepo portsrepo.AuditWriter,
	venue portssvc.VenueClient,
	validator *ValidationService,
	locker lock.Locker,
	cfg TawarruqConfig,
) portssvc.TawarruqProcessorSvc {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	return &tawarruqService{
		appRepo:        appRepo,
		tradeRepo:      tradeRepo,
		validationRepo: validationRepo,
		auditRepo:      auditRepo,
		venue:          venue,
		validator:      validator,
		locker:         locker,
		cfg:            cfg,
	}
}

func failure(status domain.FinancingStatus, message string, details map[string]any) dto.ProcessingResult {
	return dto.ProcessingResult{Success: false, NewStatus: string(status), Message: message, Details: details}
}

func success(status domain.FinancingStatus, message string, details map[string]any) dto.ProcessingResult {
	return dto.ProcessingResult{Success: true, NewStatus: string(status), Message: message, Details: details}
}

// lockApplication serializes processing steps per application. The database
// CAS guards alone would make a concurrent second call fail once the first
// status write lands; the lock stops it from reaching the venue at all.
func (s *tawarruqService) lockApplication(ctx context.Context, applicationID string) (lock.Handle, error) {
	return s.locker.Obtain(ctx, "tawarruq:app:"+applicationID, s.cfg.LockTTL)
}

// markBlocked moves an application to the terminal blocked state. expected
// is the status the application holds while we own the processing lock.
func (s *tawarruqService) markBlocked(ctx context.Context, applicationID string, expected domain.FinancingStatus, reason string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.appRepo.UpdateApplicationStatus(ctx, applicationID, expected, domain.StatusBlocked, &reason, time.Now().UTC()); err != nil {
		logger.Error("Failed to mark application blocked",
			slog.String("application_id", applicationID),
			slog.String("reason", reason),
			slog.String("error", err.Error()))
	}
}

func (s *tawarruqService) audit(ctx context.Context, applicationID, action string, details map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	entry := domain.AuditLog{
		AuditID:     uuid.NewString(),
		FinancingID: applicationID,
		Action:      action,
		ActorID:     "tawarruq-processor",
		ActorType:   domain.ActorSystem,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		// The audit trail must not abort processing.
		logger.Warn("Failed to append audit log", slog.String("action", action), slog.String("error", err.Error()))
	}
}

// ProcessT1 executes the bank's commodity purchase and its pre-check.
// submitted -> t1_pending -> t1_validated, or blocked on any validation or
// processing failure. Precondition failures mutate nothing.
func (s *tawarruqService) ProcessT1(ctx context.Context, applicationID string) dto.ProcessingResult {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("application_id", applicationID))

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return failure("unknown", "Application not found", nil)
		}
		logger.Error("Failed to load application for T1", slog.String("error", err.Error()))
		return failure("unknown", "Failed to load application", nil)
	}

	if app.Status != domain.StatusSubmitted {
		return failure(app.Status, fmt.Sprintf("Cannot process T1: application status is %s", app.Status), nil)
	}

	handle, err := s.lockApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return failure(app.Status, "Application is already being processed", nil)
		}
		logger.Error("Failed to obtain processing lock", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to obtain processing lock", nil)
	}
	defer func() {
		if err := handle.Release(ctx); err != nil {
			logger.Warn("Failed to release processing lock", slog.String("error", err.Error()))
		}
	}()

	now := time.Now().UTC()
	if err := s.appRepo.UpdateApplicationStatus(ctx, applicationID, domain.StatusSubmitted, domain.StatusT1Pending, nil, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return failure(app.Status, "Cannot process T1: application status changed concurrently", nil)
		}
		logger.Error("Failed to move application to t1_pending", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to start T1 processing", nil)
	}

	purchase, err := s.venue.Purchase(ctx, app.PrincipalAmount, s.cfg.BankName)
	if err != nil {
		logger.Error("Venue purchase failed", slog.String("error", err.Error()))
		s.markBlocked(ctx, applicationID, domain.StatusT1Pending, blockedReasonT1Processing)
		s.audit(ctx, applicationID, "T1_FAILED", map[string]any{"reason": blockedReasonT1Processing})
		return failure(domain.StatusBlocked, "T1 processing failed", nil)
	}

	preChecks := s.validator.ValidateT1Only(purchase)
	record := domain.ValidationRecord{
		ValidationID:     uuid.NewString(),
		FinancingID:      applicationID,
		ValidationType:   domain.T1Validation,
		ValidatorVersion: ValidatorVersion,
		ValidatedAt:      time.Now().UTC(),
	}
	recordPayload := map[string]any{"purchase": purchase, "validations": preChecks}
	record.Details, err = json.Marshal(recordPayload)
	if err != nil {
		logger.Error("Failed to serialize T1 validation details", slog.String("error", err.Error()))
		s.markBlocked(ctx, applicationID, domain.StatusT1Pending, blockedReasonT1Processing)
		return failure(domain.StatusBlocked, "T1 processing failed", nil)
	}

	if !AllPassed(preChecks) {
		// Disbursement must never proceed past a failed pre-check.
		record.Result = domain.OutcomeFail
		if err := s.validationRepo.SaveValidationAndBlock(ctx, record, blockedReasonT1Validation); err != nil {
			logger.Error("Failed to persist failing T1 validation", slog.String("error", err.Error()))
			s.markBlocked(ctx, applicationID, domain.StatusT1Pending, blockedReasonT1Validation)
		}
		s.audit(ctx, applicationID, "T1_VALIDATION_FAILED", map[string]any{"validations": preChecks})
		return failure(domain.StatusBlocked, blockedReasonT1Validation, map[string]any{"validations": preChecks})
	}

	record.Result = domain.OutcomePass
	trade := purchase
	trade.TradeID = uuid.NewString()
	trade.FinancingID = applicationID
	trade.Status = domain.TradeValidated
	trade.CreatedAt = time.Now().UTC()

	if err := s.tradeRepo.SaveTradeStep(ctx, trade, record, domain.StatusT1Pending, domain.StatusT1Validated); err != nil {
		logger.Error("Failed to persist T1 step", slog.String("error", err.Error()))
		s.markBlocked(ctx, applicationID, domain.StatusT1Pending, blockedReasonT1Processing)
		s.audit(ctx, applicationID, "T1_FAILED", map[string]any{"reason": blockedReasonT1Processing})
		return failure(domain.StatusBlocked, "T1 processing failed", nil)
	}

	logger.Info("T1 completed and validated",
		slog.String("commodity_id", trade.CommodityID),
		slog.String("venue_reference", trade.VenueReference))
	s.audit(ctx, applicationID, "T1_PROCESSED", map[string]any{
		"commodity": trade.CommodityType,
		"reference": trade.VenueReference,
	})

	return success(domain.StatusT1Validated, "T1 transaction completed and validated", map[string]any{
		"commodity": trade.CommodityType,
		"amount":    trade.TotalAmount,
		"reference": trade.VenueReference,
	})
}

// ProcessT2 executes the customer's resale and the full six-rule Shariah
// check. t1_validated/t2_pending -> t2_pending -> t2_validated, or blocked.
// A retry from t2_pending is allowed; an application with an existing T2
// record is refused outright so a retry can never duplicate the sale.
func (s *tawarruqService) ProcessT2(ctx context.Context, applicationID string) dto.ProcessingResult {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("application_id", applicationID))

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return failure("unknown", "Application not found", nil)
		}
		logger.Error("Failed to load application for T2", slog.String("error", err.Error()))
		return failure("unknown", "Failed to load application", nil)
	}

	if app.Status != domain.StatusT1Validated && app.Status != domain.StatusT2Pending {
		return failure(app.Status, fmt.Sprintf("Cannot process T2: application status is %s", app.Status), nil)
	}

	t1, err := s.tradeRepo.FindTradeByType(ctx, applicationID, domain.T1Purchase)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return failure(app.Status, "T1 transaction not found", nil)
		}
		logger.Error("Failed to load T1 trade", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to load T1 transaction", nil)
	}

	if _, err := s.tradeRepo.FindTradeByType(ctx, applicationID, domain.T2Sale); err == nil {
		return failure(app.Status, "T2 transaction already recorded for this application", nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing T2 trade", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to check existing T2 transaction", nil)
	}

	handle, err := s.lockApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return failure(app.Status, "Application is already being processed", nil)
		}
		logger.Error("Failed to obtain processing lock", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to obtain processing lock", nil)
	}
	defer func() {
		if err := handle.Release(ctx); err != nil {
			logger.Warn("Failed to release processing lock", slog.String("error", err.Error()))
		}
	}()

	if err := s.appRepo.UpdateApplicationStatus(ctx, applicationID, app.Status, domain.StatusT2Pending, nil, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return failure(app.Status, "Cannot process T2: application status changed concurrently", nil)
		}
		logger.Error("Failed to move application to t2_pending", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to start T2 processing", nil)
	}

	customerName := app.ApplicantName
	if customerName == "" {
		customerName = "Customer"
	}

	sale, err := s.venue.Sell(ctx, *t1, customerName)
	if err != nil {
		logger.Error("Venue sale failed", slog.String("error", err.Error()))
		s.markBlocked(ctx, applicationID, domain.StatusT2Pending, blockedReasonT2Processing)
		s.audit(ctx, applicationID, "T2_FAILED", map[string]any{"reason": blockedReasonT2Processing})
		return failure(domain.StatusBlocked, "T2 processing failed", nil)
	}

	report := s.validator.RunFullValidation(*t1, sale, s.cfg.BankName, customerName)

	record := domain.ValidationRecord{
		ValidationID:     uuid.NewString(),
		FinancingID:      applicationID,
		ValidationType:   domain.FullShariahCheck,
		ValidatorVersion: report.ValidatorVersion,
		ValidatedAt:      report.ValidatedAt,
	}
	record.Details, err = json.Marshal(report)
	if err != nil {
		logger.Error("Failed to serialize validation report", slog.String("error", err.Error()))
		s.markBlocked(ctx, applicationID, domain.StatusT2Pending, blockedReasonT2Processing)
		return failure(domain.StatusBlocked, "T2 processing failed", nil)
	}

	if report.Blocks() {
		// An actual Shariah violation was detected, not a system error.
		record.Result = domain.OutcomeFail
		reason := "Shariah Non-Compliance: " + strings.Join(report.FailedCriticalRules(), ", ")
		if err := s.validationRepo.SaveValidationAndBlock(ctx, record, reason); err != nil {
			logger.Error("Failed to persist non-compliant validation", slog.String("error", err.Error()))
			s.markBlocked(ctx, applicationID, domain.StatusT2Pending, reason)
		}
		logger.Warn("Shariah non-compliance detected", slog.Any("failed_rules", report.FailedRules()))
		s.audit(ctx, applicationID, "SHARIAH_NON_COMPLIANCE", map[string]any{
			"failedRules": report.FailedRules(),
		})
		return failure(domain.StatusBlocked, "SHARIAH NON-COMPLIANCE DETECTED", map[string]any{
			"overallResult": report.OverallResult,
			"failedRules":   report.FailedRules(),
		})
	}

	record.Result = domain.OutcomePass
	if report.OverallResult == domain.Warning {
		// Non-critical failures do not block; the verdict is retained for
		// audit and the flow proceeds.
		record.Result = domain.OutcomeWarning
	}

	trade := sale
	trade.TradeID = uuid.NewString()
	trade.FinancingID = applicationID
	trade.Status = domain.TradeValidated
	trade.CreatedAt = time.Now().UTC()

	if err := s.tradeRepo.SaveTradeStep(ctx, trade, record, domain.StatusT2Pending, domain.StatusT2Validated); err != nil {
		logger.Error("Failed to persist T2 step", slog.String("error", err.Error()))
		s.markBlocked(ctx, applicationID, domain.StatusT2Pending, blockedReasonT2Processing)
		s.audit(ctx, applicationID, "T2_FAILED", map[string]any{"reason": blockedReasonT2Processing})
		return failure(domain.StatusBlocked, "T2 processing failed", nil)
	}

	logger.Info("T2 completed and validated",
		slog.String("verdict", string(report.OverallResult)),
		slog.String("venue_reference", trade.VenueReference))
	s.audit(ctx, applicationID, "T2_PROCESSED", map[string]any{
		"validationResult": report.OverallResult,
		"reference":        trade.VenueReference,
	})

	return success(domain.StatusT2Validated, "T2 transaction completed - Shariah Compliant", map[string]any{
		"validationResult": report.OverallResult,
		"saleAmount":       trade.TotalAmount,
		"reference":        trade.VenueReference,
	})
}

// ApproveApplication moves t2_validated to approved. No further validation
// runs here: approval is mechanical once T2 has cleared compliance.
func (s *tawarruqService) ApproveApplication(ctx context.Context, applicationID string) dto.ProcessingResult {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("application_id", applicationID))

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return failure("unknown", "Application not found", nil)
		}
		logger.Error("Failed to load application for approval", slog.String("error", err.Error()))
		return failure("unknown", "Failed to load application", nil)
	}

	if app.Status != domain.StatusT2Validated {
		return failure(app.Status, fmt.Sprintf("Cannot approve: application status is %s", app.Status), nil)
	}

	handle, err := s.lockApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return failure(app.Status, "Application is already being processed", nil)
		}
		logger.Error("Failed to obtain processing lock", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to obtain processing lock", nil)
	}
	defer func() {
		if err := handle.Release(ctx); err != nil {
			logger.Warn("Failed to release processing lock", slog.String("error", err.Error()))
		}
	}()

	if err := s.appRepo.UpdateApplicationStatus(ctx, applicationID, domain.StatusT2Validated, domain.StatusApproved, nil, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return failure(app.Status, "Cannot approve: application status changed concurrently", nil)
		}
		logger.Error("Failed to approve application", slog.String("error", err.Error()))
		return failure(app.Status, "Failed to approve application", nil)
	}

	logger.Info("Application approved")
	s.audit(ctx, applicationID, "APPROVED", nil)

	return success(domain.StatusApproved, "Application approved - Ready for disbursement", nil)
}

// ProcessFullFlow chains T1, a settlement pause, T2 and approval,
// short-circuiting on the first failure.
func (s *tawarruqService) ProcessFullFlow(ctx context.Context, applicationID string) dto.ProcessingResult {
	t1Result := s.ProcessT1(ctx, applicationID)
	if !t1Result.Success {
		return t1Result
	}

	if s.cfg.SettlementPause > 0 {
		select {
		case <-ctx.Done():
			return failure(domain.StatusT1Validated, "Processing cancelled", nil)
		case <-time.After(s.cfg.SettlementPause):
		}
	}

	t2Result := s.ProcessT2(ctx, applicationID)
	if !t2Result.Success {
		return t2Result
	}

	return s.ApproveApplication(ctx, applicationID)
}
