package dto

import (
	"time"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateApplicationRequest is the payload for creating a draft financing
// application. ProfitRate is not accepted from the caller; it is fixed by
// product policy.
type CreateApplicationRequest struct {
	ProductType     domain.ProductType `json:"productType" binding:"required,oneof=personal_financing_i home_financing_i vehicle_financing_i business_financing_i"`
	PrincipalAmount decimal.Decimal    `json:"principalAmount" binding:"required"`
	TenureMonths    int                `json:"tenureMonths" binding:"required,gt=0"`
	ApplicantName   string             `json:"applicantName" binding:"required"`
	ApplicantIC     string             `json:"applicantIC" binding:"required"`
	ApplicantPhone  string             `json:"applicantPhone"`
	ApplicantEmail  string             `json:"applicantEmail" binding:"omitempty,email"`
}

// ListApplicationsParams holds pagination parameters for listing a
// customer's applications.
type ListApplicationsParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ApplicationResponse is the API representation of a financing application.
type ApplicationResponse struct {
	ApplicationID     string                 `json:"applicationID"`
	ApplicationNumber string                 `json:"applicationNumber"`
	ProductType       domain.ProductType     `json:"productType"`
	PrincipalAmount   decimal.Decimal        `json:"principalAmount"`
	ProfitRate        decimal.Decimal        `json:"profitRate"`
	TenureMonths      int                    `json:"tenureMonths"`
	Status            domain.FinancingStatus `json:"status"`
	ReviewStatus      domain.ReviewStatus    `json:"reviewStatus"`
	BlockedReason     *string                `json:"blockedReason,omitempty"`
	ApplicantName     string                 `json:"applicantName"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// ToApplicationResponse converts a domain application to its API shape.
// The review status is derived at the boundary so administrative callers
// never see the processing vocabulary.
func ToApplicationResponse(app *domain.FinancingApplication) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID:     app.ApplicationID,
		ApplicationNumber: app.ApplicationNumber,
		ProductType:       app.ProductType,
		PrincipalAmount:   app.PrincipalAmount,
		ProfitRate:        app.ProfitRate,
		TenureMonths:      app.TenureMonths,
		Status:            app.Status,
		ReviewStatus:      domain.ReviewStatusFor(app.Status),
		BlockedReason:     app.BlockedReason,
		ApplicantName:     app.ApplicantName,
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         app.LastUpdatedAt,
	}
}

// ToApplicationResponses converts a slice of domain applications.
func ToApplicationResponses(apps []domain.FinancingApplication) []ApplicationResponse {
	responses := make([]ApplicationResponse, len(apps))
	for i := range apps {
		responses[i] = ToApplicationResponse(&apps[i])
	}
	return responses
}
