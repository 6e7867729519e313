package services

import (
	"context"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	"github.com/nadzrin/tawarruq_financing_app/internal/dto"
)

// ApplicationReaderSvc defines read operations for financing applications.
type ApplicationReaderSvc interface {
	// GetApplicationByID retrieves a specific application.
	GetApplicationByID(ctx context.Context, applicationID string) (*domain.FinancingApplication, error)

	// ListApplicationsByCustomer retrieves a customer's applications.
	ListApplicationsByCustomer(ctx context.Context, customerID string, params dto.ListApplicationsParams) ([]domain.FinancingApplication, error)

	// ListTrades retrieves the trade legs recorded for an application.
	ListTrades(ctx context.Context, applicationID string) ([]domain.CommodityTrade, error)

	// ListValidations retrieves the validation history for an application.
	ListValidations(ctx context.Context, applicationID string) ([]domain.ValidationRecord, error)

	// ListAuditLogs retrieves the audit trail for an application.
	ListAuditLogs(ctx context.Context, applicationID string) ([]domain.AuditLog, error)
}

// ApplicationWriterSvc defines write operations for financing applications.
type ApplicationWriterSvc interface {
	// CreateApplication creates a draft application for a customer.
	CreateApplication(ctx context.Context, customerID string, req dto.CreateApplicationRequest) (*domain.FinancingApplication, error)

	// SubmitApplication moves a draft application to submitted, making it
	// eligible for Tawarruq processing.
	SubmitApplication(ctx context.Context, applicationID string, customerID string) (*domain.FinancingApplication, error)
}

// ApplicationSvcFacade combines all application service interfaces.
type ApplicationSvcFacade interface {
	ApplicationReaderSvc
	ApplicationWriterSvc
}
