package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/services"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	mockAppRepo   *MockApplicationRepository
	mockAuditRepo *MockAuditRepository
	service       portssvc.ReviewSvcFacade
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewReviewService(suite.mockAppRepo, suite.mockAuditRepo)
}

func (suite *ReviewServiceTestSuite) application(status domain.FinancingStatus) *domain.FinancingApplication {
	return &domain.FinancingApplication{
		ApplicationID: uuid.NewString(),
		CustomerID:    uuid.NewString(),
		Status:        status,
	}
}

func (suite *ReviewServiceTestSuite) TestApprovePending() {
	ctx := context.Background()
	actorID := uuid.NewString()
	app := suite.application(domain.StatusSubmitted)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAppRepo.On("UpdateApplicationStatus", ctx, app.ApplicationID, domain.StatusSubmitted, domain.StatusApproved, (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLog) bool {
		return e.Action == "REVIEW_STATUS_CHANGED" && e.ActorID == actorID && e.ActorType == domain.ActorUser
	})).Return(nil).Once()

	updated, err := suite.service.ChangeReviewStatus(ctx, app.ApplicationID, domain.ReviewApproved, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, updated.Status)
	suite.mockAppRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *ReviewServiceTestSuite) TestRejectSetsReason() {
	ctx := context.Background()
	app := suite.application(domain.StatusSubmitted)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAppRepo.On("UpdateApplicationStatus", ctx, app.ApplicationID, domain.StatusSubmitted, domain.StatusBlocked, mock.MatchedBy(func(r *string) bool {
		return r != nil && *r == "Rejected by administrator"
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditLog", ctx, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	updated, err := suite.service.ChangeReviewStatus(ctx, app.ApplicationID, domain.ReviewRejected, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.StatusBlocked, updated.Status)
	suite.Require().NotNil(updated.BlockedReason)
}

func (suite *ReviewServiceTestSuite) TestReopenRejected() {
	ctx := context.Background()
	app := suite.application(domain.StatusBlocked)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAppRepo.On("UpdateApplicationStatus", ctx, app.ApplicationID, domain.StatusBlocked, domain.StatusSubmitted, (*string)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditLog", ctx, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	updated, err := suite.service.ChangeReviewStatus(ctx, app.ApplicationID, domain.ReviewPending, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSubmitted, updated.Status)
	suite.Nil(updated.BlockedReason)
}

func (suite *ReviewServiceTestSuite) TestDisburseRequiresApproved() {
	ctx := context.Background()
	app := suite.application(domain.StatusSubmitted)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

	_, err := suite.service.ChangeReviewStatus(ctx, app.ApplicationID, domain.ReviewDisbursed, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReviewServiceTestSuite) TestDisbursedIsFinal() {
	ctx := context.Background()
	app := suite.application(domain.StatusDisbursed)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

	_, err := suite.service.ChangeReviewStatus(ctx, app.ApplicationID, domain.ReviewPending, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReviewServiceTestSuite) TestRefusesInFlightApplications() {
	ctx := context.Background()

	for _, status := range []domain.FinancingStatus{
		domain.StatusT1Pending,
		domain.StatusT1Validated,
		domain.StatusT2Pending,
		domain.StatusT2Validated,
	} {
		app := suite.application(status)
		suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

		_, err := suite.service.ChangeReviewStatus(ctx, app.ApplicationID, domain.ReviewApproved, uuid.NewString())

		suite.ErrorIs(err, apperrors.ErrConflict, "status %s must refuse review", status)
	}
	suite.mockAppRepo.AssertNotCalled(suite.T(), "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReviewServiceTestSuite) TestNotFound() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockAppRepo.On("FindApplicationByID", ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ChangeReviewStatus(ctx, id, domain.ReviewApproved, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
