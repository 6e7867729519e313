package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/dto"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockAppRepo        *MockApplicationRepository
	mockTradeRepo      *MockTradeRepository
	mockValidationRepo *MockValidationRepository
	mockAuditRepo      *MockAuditRepository
	service            portssvc.ApplicationSvcFacade
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockValidationRepo = new(MockValidationRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewApplicationService(suite.mockAppRepo, suite.mockTradeRepo, suite.mockValidationRepo, suite.mockAuditRepo)
}

func validCreateRequest() dto.CreateApplicationRequest {
	return dto.CreateApplicationRequest{
		ProductType:     domain.PersonalFinancing,
		PrincipalAmount: decimal.RequireFromString("100000"),
		TenureMonths:    36,
		ApplicantName:   "Ahmad bin Abdullah",
		ApplicantIC:     "880101-14-5567",
	}
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := validCreateRequest()

	suite.mockAppRepo.On("NextApplicationSequence", ctx, mock.AnythingOfType("int")).Return(int64(42), nil).Once()
	suite.mockAppRepo.On("SaveApplication", ctx, mock.MatchedBy(func(app domain.FinancingApplication) bool {
		return app.CustomerID == customerID &&
			app.Status == domain.StatusDraft &&
			app.ProductType == req.ProductType &&
			strings.HasPrefix(app.ApplicationNumber, "TWQ-") &&
			strings.HasSuffix(app.ApplicationNumber, "-000042") &&
			app.CreatedBy == customerID
	})).Return(nil).Once()

	app, err := suite.service.CreateApplication(ctx, customerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(app)
	suite.Equal(domain.StatusDraft, app.Status)
	suite.True(app.ProfitRate.Equal(decimal.RequireFromString("0.05")))
	suite.NotEmpty(app.ApplicationID)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_RejectsNonPositivePrincipal() {
	ctx := context.Background()
	req := validCreateRequest()
	req.PrincipalAmount = decimal.Zero

	app, err := suite.service.CreateApplication(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "SaveApplication", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_RejectsZeroTenure() {
	ctx := context.Background()
	req := validCreateRequest()
	req.TenureMonths = 0

	_, err := suite.service.CreateApplication(ctx, uuid.NewString(), req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	app := &domain.FinancingApplication{
		ApplicationID: uuid.NewString(),
		CustomerID:    customerID,
		Status:        domain.StatusDraft,
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAppRepo.On("UpdateApplicationStatus", ctx, app.ApplicationID, domain.StatusDraft, domain.StatusSubmitted, (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()

	submitted, err := suite.service.SubmitApplication(ctx, app.ApplicationID, customerID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSubmitted, submitted.Status)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_HidesOtherCustomersApplications() {
	ctx := context.Background()
	app := &domain.FinancingApplication{
		ApplicationID: uuid.NewString(),
		CustomerID:    uuid.NewString(),
		Status:        domain.StatusDraft,
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

	_, err := suite.service.SubmitApplication(ctx, app.ApplicationID, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_RejectsNonDraft() {
	ctx := context.Background()
	customerID := uuid.NewString()
	app := &domain.FinancingApplication{
		ApplicationID: uuid.NewString(),
		CustomerID:    customerID,
		Status:        domain.StatusSubmitted,
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

	_, err := suite.service.SubmitApplication(ctx, app.ApplicationID, customerID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ApplicationServiceTestSuite) TestListApplications_DefaultsLimit() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockAppRepo.On("ListApplicationsByCustomer", ctx, customerID, 20, 0).Return([]domain.FinancingApplication{}, nil).Once()

	_, err := suite.service.ListApplicationsByCustomer(ctx, customerID, dto.ListApplicationsParams{})

	suite.Require().NoError(err)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestListTrades_UnknownApplication() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockAppRepo.On("FindApplicationByID", ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListTrades(ctx, id)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "ListTradesByFinancingID", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestListAuditLogs_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	app := &domain.FinancingApplication{
		ApplicationID: uuid.NewString(),
		CustomerID:    customerID,
		Status:        domain.StatusApproved,
	}
	entries := []domain.AuditLog{
		{AuditID: uuid.NewString(), FinancingID: app.ApplicationID, Action: "T1_PROCESSED", ActorType: domain.ActorSystem},
		{AuditID: uuid.NewString(), FinancingID: app.ApplicationID, Action: "APPROVED", ActorType: domain.ActorSystem},
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuditRepo.On("ListAuditLogsByFinancingID", ctx, app.ApplicationID).Return(entries, nil).Once()

	got, err := suite.service.ListAuditLogs(ctx, app.ApplicationID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.Equal("T1_PROCESSED", got[0].Action)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestListAuditLogs_UnknownApplication() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockAppRepo.On("FindApplicationByID", ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListAuditLogs(ctx, id)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListAuditLogsByFinancingID", mock.Anything, mock.Anything)
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
