package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidatorVersion tags every report produced by this engine so persisted
// history stays attributable after rule changes.
const ValidatorVersion = "1.0.0"

// certificatePrefix is the format prefix the venue stamps on every
// certificate number.
const certificatePrefix = "CERT-"

var pricingVarianceLimit = decimal.NewFromInt(5) // percent

// ValidationService evaluates Tawarruq trade pairs against the Shariah
// compliance rule set. It is a pure function set: no I/O, no side effects,
// and therefore safe to call from anywhere.
type ValidationService struct{}

// NewValidationService creates a new ValidationService.
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidateSequence checks Tartib: the T1 purchase must complete strictly
// before the T2 sale. This is the single most important Shariah requirement;
// a tie or inversion is an unconditional non-compliance signal.
func (s *ValidationService) ValidateSequence(t1, t2 domain.CommodityTrade) domain.RuleResult {
	passed := t1.Timestamp.Before(t2.Timestamp)
	diff := t2.Timestamp.Sub(t1.Timestamp)

	message := "CRITICAL: T2 occurred before T1 - Shariah Non-Compliance detected"
	if passed {
		message = fmt.Sprintf("T1 occurred %ds before T2 - Sequence valid", int(diff.Round(time.Second).Seconds()))
	}

	return domain.RuleResult{
		Rule:    domain.RuleTartibSequence,
		Passed:  passed,
		Message: message,
		Details: map[string]any{
			"t1_timestamp":       t1.Timestamp.Format(time.RFC3339Nano),
			"t2_timestamp":       t2.Timestamp.Format(time.RFC3339Nano),
			"time_difference_ms": diff.Milliseconds(),
		},
	}
}

// ValidateCommodityIdentity checks that the same commodity lot flows through
// both legs of the trade.
func (s *ValidationService) ValidateCommodityIdentity(t1, t2 domain.CommodityTrade) domain.RuleResult {
	passed := t1.CommodityID == t2.CommodityID

	message := "CRITICAL: Different commodities in T1 and T2"
	if passed {
		message = "Same commodity used in T1 and T2 - Valid"
	}

	return domain.RuleResult{
		Rule:    domain.RuleCommodityIdentity,
		Passed:  passed,
		Message: message,
		Details: map[string]any{
			"t1_commodity": t1.CommodityID,
			"t2_commodity": t2.CommodityID,
		},
	}
}

// ValidateOwnership checks Qabd: the bank must take ownership in T1 and the
// customer must be the seller in T2, so possession genuinely transferred
// bank to customer before customer to third party.
func (s *ValidationService) ValidateOwnership(t1, t2 domain.CommodityTrade, bankName, customerName string) domain.RuleResult {
	bankOwned := t1.Buyer == bankName
	customerSold := t2.Seller == customerName
	passed := bankOwned && customerSold

	message := "CRITICAL: Ownership chain broken"
	if passed {
		message = "Ownership chain valid: Venue -> Bank -> Customer -> Third Party"
	}

	return domain.RuleResult{
		Rule:    domain.RuleQabdOwnership,
		Passed:  passed,
		Message: message,
		Details: map[string]any{
			"t1_buyer":          t1.Buyer,
			"t2_seller":         t2.Seller,
			"expected_bank":     bankName,
			"expected_customer": customerName,
		},
	}
}

// ValidateQuantity checks that both legs trade exactly the same quantity.
func (s *ValidationService) ValidateQuantity(t1, t2 domain.CommodityTrade) domain.RuleResult {
	passed := t1.Quantity.Equal(t2.Quantity)

	message := fmt.Sprintf("CRITICAL: Quantity mismatch - T1: %s MT, T2: %s MT", t1.Quantity, t2.Quantity)
	if passed {
		message = fmt.Sprintf("Quantity consistent: %s MT", t1.Quantity)
	}

	return domain.RuleResult{
		Rule:    domain.RuleQuantityConsistency,
		Passed:  passed,
		Message: message,
		Details: map[string]any{
			"t1_quantity": t1.Quantity.String(),
			"t2_quantity": t2.Quantity.String(),
		},
	}
}

// ValidatePricing checks that the T2 price sits at or below the T1 price
// within a 5% band. A negative variance (T2 priced above T1) or a spread of
// 5% or more fails the rule.
func (s *ValidationService) ValidatePricing(t1, t2 domain.CommodityTrade) domain.RuleResult {
	if !t1.UnitPrice.IsPositive() {
		// Hand-constructed records can carry a zero price; decimal division
		// would panic on it.
		return domain.RuleResult{
			Rule:    domain.RulePricingValidity,
			Passed:  false,
			Message: "WARNING: T1 unit price is not positive, variance undefined",
			Details: map[string]any{
				"t1_unit_price": t1.UnitPrice.String(),
				"t2_unit_price": t2.UnitPrice.String(),
			},
		}
	}

	variance := t1.UnitPrice.Sub(t2.UnitPrice).
		Div(t1.UnitPrice).
		Mul(decimal.NewFromInt(100))
	passed := !variance.IsNegative() && variance.LessThan(pricingVarianceLimit)

	message := fmt.Sprintf("WARNING: Price variance exceeds threshold (%s%%)", variance.StringFixed(2))
	if passed {
		message = fmt.Sprintf("Pricing within acceptable range (%s%% variance)", variance.StringFixed(2))
	}

	return domain.RuleResult{
		Rule:    domain.RulePricingValidity,
		Passed:  passed,
		Message: message,
		Details: map[string]any{
			"t1_unit_price":    t1.UnitPrice.String(),
			"t2_unit_price":    t2.UnitPrice.String(),
			"variance_percent": variance.String(),
		},
	}
}

// ValidateCertificates checks that both legs carry a certificate number in
// the venue's expected format.
func (s *ValidationService) ValidateCertificates(t1, t2 domain.CommodityTrade) domain.RuleResult {
	t1HasCert := strings.HasPrefix(t1.CertificateNumber, certificatePrefix)
	t2HasCert := strings.HasPrefix(t2.CertificateNumber, certificatePrefix)
	passed := t1HasCert && t2HasCert

	message := "CRITICAL: Missing or invalid certificates"
	if passed {
		message = "Both transactions have valid venue certificates"
	}

	return domain.RuleResult{
		Rule:    domain.RuleCertificateValidity,
		Passed:  passed,
		Message: message,
		Details: map[string]any{
			"t1_certificate": t1.CertificateNumber,
			"t2_certificate": t2.CertificateNumber,
		},
	}
}

// RunFullValidation evaluates all six rules in order and aggregates them
// into a report. Any critical failure (sequence, identity, ownership) makes
// the verdict NON_COMPLIANT; any other failure downgrades it to WARNING.
// The tiering is policy: the critical rules encode the actual Shariah
// prohibitions, the rest are documentation-quality concerns.
func (s *ValidationService) RunFullValidation(t1, t2 domain.CommodityTrade, bankName, customerName string) domain.ValidationReport {
	results := []domain.RuleResult{
		s.ValidateSequence(t1, t2),
		s.ValidateCommodityIdentity(t1, t2),
		s.ValidateOwnership(t1, t2, bankName, customerName),
		s.ValidateQuantity(t1, t2),
		s.ValidatePricing(t1, t2),
		s.ValidateCertificates(t1, t2),
	}

	var passed, failed int
	criticalFailure := false
	for _, r := range results {
		if r.Passed {
			passed++
			continue
		}
		failed++
		if domain.CriticalRules[r.Rule] {
			criticalFailure = true
		}
	}

	overall := domain.Compliant
	if criticalFailure {
		overall = domain.NonCompliant
	} else if failed > 0 {
		overall = domain.Warning
	}

	return domain.ValidationReport{
		OverallResult:    overall,
		ValidatedAt:      time.Now().UTC(),
		ValidatorVersion: ValidatorVersion,
		Results:          results,
		Summary: domain.ValidationSummary{
			Passed: passed,
			Failed: failed,
		},
	}
}

// ValidateT1Only runs the reduced pre-check used immediately after the
// purchase, before a T2 leg exists: certificate present, venue reference
// present, total amount positive. There is no aggregate verdict beyond
// every check passing or not.
func (s *ValidationService) ValidateT1Only(t1 domain.CommodityTrade) []domain.RuleResult {
	results := make([]domain.RuleResult, 0, 3)

	certMessage := "T1 certificate missing"
	if t1.CertificateNumber != "" {
		certMessage = "T1 certificate issued"
	}
	results = append(results, domain.RuleResult{
		Rule:    domain.RuleT1Certificate,
		Passed:  t1.CertificateNumber != "",
		Message: certMessage,
		Details: map[string]any{"certificate": t1.CertificateNumber},
	})

	refMessage := "T1 venue reference missing"
	if t1.VenueReference != "" {
		refMessage = "T1 has valid venue reference"
	}
	results = append(results, domain.RuleResult{
		Rule:    domain.RuleT1VenueRef,
		Passed:  t1.VenueReference != "",
		Message: refMessage,
		Details: map[string]any{"reference": t1.VenueReference},
	})

	amountValid := t1.TotalAmount.IsPositive()
	amountMessage := "T1 amount invalid"
	if amountValid {
		amountMessage = fmt.Sprintf("T1 amount valid: MYR %s", t1.TotalAmount)
	}
	results = append(results, domain.RuleResult{
		Rule:    domain.RuleT1Amount,
		Passed:  amountValid,
		Message: amountMessage,
		Details: map[string]any{"amount": t1.TotalAmount.String()},
	})

	return results
}

// AllPassed reports whether every result in a rule set passed.
func AllPassed(results []domain.RuleResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
