package domain

import "github.com/shopspring/decimal"

// FinancingStatus is the detailed processing status of a financing
// application. It is distinct from ReviewStatus, the simplified vocabulary
// used by the administrative review path.
type FinancingStatus string

const (
	StatusDraft       FinancingStatus = "draft"
	StatusSubmitted   FinancingStatus = "submitted"
	StatusT1Pending   FinancingStatus = "t1_pending"
	StatusT1Validated FinancingStatus = "t1_validated"
	StatusT2Pending   FinancingStatus = "t2_pending"
	StatusT2Validated FinancingStatus = "t2_validated"
	StatusApproved    FinancingStatus = "approved"
	StatusBlocked     FinancingStatus = "blocked"
	StatusDisbursed   FinancingStatus = "disbursed"
)

// IsTerminal reports whether the Tawarruq processing flow can make no
// further progress from this status on its own. Reopening a blocked
// application is an administrative action, not a processing transition.
func (s FinancingStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusBlocked || s == StatusDisbursed
}

// ProductType identifies the Islamic financing product applied for.
type ProductType string

const (
	PersonalFinancing ProductType = "personal_financing_i"
	HomeFinancing     ProductType = "home_financing_i"
	VehicleFinancing  ProductType = "vehicle_financing_i"
	BusinessFinancing ProductType = "business_financing_i"
)

// FinancingApplication is a customer's Tawarruq financing application.
// PrincipalAmount is immutable once a T1 purchase has been executed against
// it; every downstream trade and validation record references this amount.
type FinancingApplication struct {
	ApplicationID     string          `json:"applicationID"`
	ApplicationNumber string          `json:"applicationNumber"`
	CustomerID        string          `json:"customerID"`
	ProductType       ProductType     `json:"productType"`
	PrincipalAmount   decimal.Decimal `json:"principalAmount"` // MYR
	ProfitRate        decimal.Decimal `json:"profitRate"`      // p.a., fixed 0.05 for this product family
	TenureMonths      int             `json:"tenureMonths"`
	Status            FinancingStatus `json:"status"`
	BlockedReason     *string         `json:"blockedReason,omitempty"`
	ApplicantName     string          `json:"applicantName"`
	ApplicantIC       string          `json:"applicantIC"`
	ApplicantPhone    string          `json:"applicantPhone"`
	ApplicantEmail    string          `json:"applicantEmail"`
	AuditFields
}
