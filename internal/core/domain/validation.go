package domain

import "time"

// Verdict is the aggregate outcome of a Shariah compliance validation run.
type Verdict string

const (
	Compliant    Verdict = "COMPLIANT"
	NonCompliant Verdict = "NON_COMPLIANT"
	Warning      Verdict = "WARNING"
)

// Rule identifiers, in evaluation order. The first three are critical:
// failing any of them means the flow violates an actual Shariah
// prohibition and must not reach approval.
const (
	RuleTartibSequence      = "TARTIB_SEQUENCE"
	RuleCommodityIdentity   = "COMMODITY_IDENTITY"
	RuleQabdOwnership       = "QABD_OWNERSHIP"
	RuleQuantityConsistency = "QUANTITY_CONSISTENCY"
	RulePricingValidity     = "PRICING_VALIDITY"
	RuleCertificateValidity = "CERTIFICATE_VALIDITY"
)

// T1 pre-check rule identifiers, used before a T2 leg exists.
const (
	RuleT1Certificate = "T1_CERTIFICATE"
	RuleT1VenueRef    = "T1_VENUE_REF"
	RuleT1Amount      = "T1_AMOUNT"
)

// CriticalRules are the rules whose failure makes the whole flow
// NON_COMPLIANT regardless of every other result.
var CriticalRules = map[string]bool{
	RuleTartibSequence:    true,
	RuleCommodityIdentity: true,
	RuleQabdOwnership:     true,
}

// RuleResult is the outcome of evaluating a single compliance rule.
type RuleResult struct {
	Rule    string         `json:"rule"`
	Passed  bool           `json:"passed"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ValidationSummary counts rule outcomes for a report.
type ValidationSummary struct {
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

// ValidationReport is the full result of a compliance validation run.
// Reports are append-only history and are never mutated after creation.
type ValidationReport struct {
	OverallResult    Verdict           `json:"overallResult"`
	ValidatedAt      time.Time         `json:"validatedAt"`
	ValidatorVersion string            `json:"validatorVersion"`
	Results          []RuleResult      `json:"results"`
	Summary          ValidationSummary `json:"summary"`
}

// FailedRules returns the identifiers of every failed rule, in evaluation
// order.
func (r ValidationReport) FailedRules() []string {
	var failed []string
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res.Rule)
		}
	}
	return failed
}

// FailedCriticalRules returns the identifiers of failed critical rules only.
func (r ValidationReport) FailedCriticalRules() []string {
	var failed []string
	for _, res := range r.Results {
		if !res.Passed && CriticalRules[res.Rule] {
			failed = append(failed, res.Rule)
		}
	}
	return failed
}

// Blocks reports whether this verdict must stop the flow. WARNING verdicts
// deliberately do not block; the report is retained for audit instead.
func (r ValidationReport) Blocks() bool {
	return r.OverallResult == NonCompliant
}

// ValidationType identifies which check produced a persisted validation
// record.
type ValidationType string

const (
	T1Validation         ValidationType = "T1_VALIDATION"
	FullShariahCheck     ValidationType = "FULL_SHARIAH_COMPLIANCE"
	ManualReviewOverride ValidationType = "MANUAL_REVIEW"
)

// ValidationOutcome is the coarse persisted result of a validation run.
type ValidationOutcome string

const (
	OutcomePass    ValidationOutcome = "pass"
	OutcomeFail    ValidationOutcome = "fail"
	OutcomeWarning ValidationOutcome = "warning"
)

// ValidationRecord is a persisted, append-only validation result keyed by
// the owning application. Details holds the serialized report payload.
type ValidationRecord struct {
	ValidationID     string            `json:"validationID"`
	FinancingID      string            `json:"financingID"`
	ValidationType   ValidationType    `json:"validationType"`
	Result           ValidationOutcome `json:"result"`
	Details          []byte            `json:"details"` // JSON payload
	ValidatorVersion string            `json:"validatorVersion"`
	ValidatedAt      time.Time         `json:"validatedAt"`
}
