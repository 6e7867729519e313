package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/services"
)

const (
	testBankName     = "Alif Islamic Bank"
	testCustomerName = "Ahmad bin Abdullah"
)

// compliantPair builds a T1/T2 pair that passes all six rules.
func compliantPair() (domain.CommodityTrade, domain.CommodityTrade) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	t1 := domain.CommodityTrade{
		TradeType:         domain.T1Purchase,
		CommodityID:       "COM-AAAA11112222",
		CommodityType:     domain.CPO,
		Quantity:          decimal.RequireFromString("25.000"),
		UnitPrice:         decimal.RequireFromString("4000.00"),
		TotalAmount:       decimal.RequireFromString("100000"),
		VenueReference:    "BSAS-BBBB33334444",
		Timestamp:         base,
		SequenceNumber:    1,
		Seller:            "BSAS Trading Platform",
		Buyer:             testBankName,
		CertificateNumber: "CERT-CCCC55556666",
	}
	t2 := domain.CommodityTrade{
		TradeType:         domain.T2Sale,
		CommodityID:       t1.CommodityID,
		CommodityType:     t1.CommodityType,
		Quantity:          t1.Quantity,
		UnitPrice:         decimal.RequireFromString("3992.00"),
		TotalAmount:       decimal.RequireFromString("99800.00"),
		VenueReference:    "BSAS-DDDD77778888",
		Timestamp:         base.Add(2 * time.Second),
		SequenceNumber:    2,
		Seller:            testCustomerName,
		Buyer:             "Third Party Broker",
		CertificateNumber: "CERT-EEEE99990000",
	}
	return t1, t2
}

func TestValidateSequence(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()

	t.Run("t1 before t2 passes", func(t *testing.T) {
		res := svc.ValidateSequence(t1, t2)
		assert.True(t, res.Passed)
		assert.Equal(t, domain.RuleTartibSequence, res.Rule)
		assert.EqualValues(t, int64(2000), res.Details["time_difference_ms"])
	})

	t.Run("t2 before t1 fails", func(t *testing.T) {
		res := svc.ValidateSequence(t2, t1)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "Shariah Non-Compliance")
	})

	t.Run("identical timestamps fail", func(t *testing.T) {
		t2Same := t2
		t2Same.Timestamp = t1.Timestamp
		res := svc.ValidateSequence(t1, t2Same)
		assert.False(t, res.Passed)
	})
}

func TestValidateCommodityIdentity(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()

	assert.True(t, svc.ValidateCommodityIdentity(t1, t2).Passed)

	t2.CommodityID = "COM-DIFFERENT000"
	res := svc.ValidateCommodityIdentity(t1, t2)
	assert.False(t, res.Passed)
	assert.Equal(t, domain.RuleCommodityIdentity, res.Rule)
}

func TestValidateOwnership(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()

	assert.True(t, svc.ValidateOwnership(t1, t2, testBankName, testCustomerName).Passed)

	t.Run("wrong t1 buyer fails", func(t *testing.T) {
		bad := t1
		bad.Buyer = "Some Other Bank"
		assert.False(t, svc.ValidateOwnership(bad, t2, testBankName, testCustomerName).Passed)
	})

	t.Run("wrong t2 seller fails", func(t *testing.T) {
		bad := t2
		bad.Seller = "Not The Customer"
		assert.False(t, svc.ValidateOwnership(t1, bad, testBankName, testCustomerName).Passed)
	})
}

func TestValidateQuantity(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()

	assert.True(t, svc.ValidateQuantity(t1, t2).Passed)

	// Same value, different scale, still equal
	t2.Quantity = decimal.RequireFromString("25")
	assert.True(t, svc.ValidateQuantity(t1, t2).Passed)

	t2.Quantity = decimal.RequireFromString("24.999")
	assert.False(t, svc.ValidateQuantity(t1, t2).Passed)
}

func TestValidatePricing(t *testing.T) {
	svc := services.NewValidationService()

	priced := func(p1, p2 string) (domain.CommodityTrade, domain.CommodityTrade) {
		t1, t2 := compliantPair()
		t1.UnitPrice = decimal.RequireFromString(p1)
		t2.UnitPrice = decimal.RequireFromString(p2)
		return t1, t2
	}

	tests := []struct {
		name   string
		p1, p2 string
		passed bool
	}{
		{"small discount passes", "4000", "3992", true},
		{"equal prices pass", "4000", "4000", true},
		{"just under five percent passes", "4000", "3801", true},
		{"exactly five percent fails", "4000", "3800", false},
		{"t2 above t1 fails", "4000", "4001", false},
		{"zero t1 price fails without panicking", "0", "3992", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t1, t2 := priced(tt.p1, tt.p2)
			res := svc.ValidatePricing(t1, t2)
			assert.Equal(t, tt.passed, res.Passed)
			assert.Equal(t, domain.RulePricingValidity, res.Rule)
		})
	}
}

func TestValidateCertificates(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()

	assert.True(t, svc.ValidateCertificates(t1, t2).Passed)

	t.Run("missing certificate fails", func(t *testing.T) {
		bad := t2
		bad.CertificateNumber = ""
		assert.False(t, svc.ValidateCertificates(t1, bad).Passed)
	})

	t.Run("wrong prefix fails", func(t *testing.T) {
		bad := t1
		bad.CertificateNumber = "DOC-1234"
		assert.False(t, svc.ValidateCertificates(bad, t2).Passed)
	})
}

func TestRunFullValidation_Compliant(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()

	report := svc.RunFullValidation(t1, t2, testBankName, testCustomerName)

	assert.Equal(t, domain.Compliant, report.OverallResult)
	assert.Len(t, report.Results, 6)
	assert.Equal(t, 6, report.Summary.Passed)
	assert.Equal(t, 0, report.Summary.Failed)
	assert.Equal(t, services.ValidatorVersion, report.ValidatorVersion)
	assert.False(t, report.Blocks())
	assert.Empty(t, report.FailedRules())
}

func TestRunFullValidation_SequenceViolation(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()
	t2.Timestamp = t1.Timestamp.Add(-time.Second)

	report := svc.RunFullValidation(t1, t2, testBankName, testCustomerName)

	assert.Equal(t, domain.NonCompliant, report.OverallResult)
	assert.True(t, report.Blocks())
	assert.Equal(t, []string{domain.RuleTartibSequence}, report.FailedCriticalRules())
}

func TestRunFullValidation_WarningDoesNotBlock(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()
	// Push the resale price 6% under the purchase price: non-critical failure
	t2.UnitPrice = decimal.RequireFromString("3760.00")

	report := svc.RunFullValidation(t1, t2, testBankName, testCustomerName)

	assert.Equal(t, domain.Warning, report.OverallResult)
	assert.False(t, report.Blocks())
	assert.Equal(t, []string{domain.RulePricingValidity}, report.FailedRules())
	assert.Empty(t, report.FailedCriticalRules())
}

func TestRunFullValidation_CriticalOutranksWarning(t *testing.T) {
	svc := services.NewValidationService()
	t1, t2 := compliantPair()
	t2.CommodityID = "COM-DIFFERENT000"
	t2.UnitPrice = decimal.RequireFromString("3760.00")

	report := svc.RunFullValidation(t1, t2, testBankName, testCustomerName)

	assert.Equal(t, domain.NonCompliant, report.OverallResult)
	assert.Equal(t, 2, report.Summary.Failed)
	assert.Equal(t, []string{domain.RuleCommodityIdentity}, report.FailedCriticalRules())
}

func TestValidateT1Only(t *testing.T) {
	svc := services.NewValidationService()
	t1, _ := compliantPair()

	t.Run("well formed purchase passes", func(t *testing.T) {
		results := svc.ValidateT1Only(t1)
		require.Len(t, results, 3)
		assert.True(t, services.AllPassed(results))
	})

	t.Run("missing certificate fails", func(t *testing.T) {
		bad := t1
		bad.CertificateNumber = ""
		assert.False(t, services.AllPassed(svc.ValidateT1Only(bad)))
	})

	t.Run("missing venue reference fails", func(t *testing.T) {
		bad := t1
		bad.VenueReference = ""
		assert.False(t, services.AllPassed(svc.ValidateT1Only(bad)))
	})

	t.Run("non-positive amount fails", func(t *testing.T) {
		bad := t1
		bad.TotalAmount = decimal.Zero
		assert.False(t, services.AllPassed(svc.ValidateT1Only(bad)))
	})
}
