package bsas_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzrin/tawarruq_financing_app/internal/adapters/venue/bsas"
	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/services"
)

const bankName = "Alif Islamic Bank"

// fixedRand returns preset values so trades are fully deterministic.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.n % n }

func TestPurchase_Deterministic(t *testing.T) {
	// Commodity index 0 (CPO, band 3800-4200), midpoint price 4000.00
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 0})

	trade, err := client.Purchase(context.Background(), decimal.RequireFromString("100000"), bankName)
	require.NoError(t, err)

	assert.Equal(t, domain.T1Purchase, trade.TradeType)
	assert.Equal(t, domain.CPO, trade.CommodityType)
	assert.Equal(t, "4000", trade.UnitPrice.String())
	assert.Equal(t, "25", trade.Quantity.String())
	// TotalAmount is the principal by construction, not quantity x price
	assert.Equal(t, "100000", trade.TotalAmount.String())
	assert.Equal(t, bsas.VenueSellerName, trade.Seller)
	assert.Equal(t, bankName, trade.Buyer)
	assert.Equal(t, 1, trade.SequenceNumber)
	assert.Equal(t, domain.TradePending, trade.Status)
	assert.True(t, strings.HasPrefix(trade.CommodityID, "COM-"))
	assert.True(t, strings.HasPrefix(trade.VenueReference, "BSAS-"))
	assert.True(t, strings.HasPrefix(trade.CertificateNumber, "CERT-"))
}

func TestPurchase_QuantityRounding(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 0})

	// 50000 / 4000 = 12.5 MT exactly; 100001 / 4000 rounds to 3 decimals
	trade, err := client.Purchase(context.Background(), decimal.RequireFromString("100001"), bankName)
	require.NoError(t, err)
	assert.Equal(t, "25", trade.Quantity.String())
	assert.Equal(t, "100001", trade.TotalAmount.String())
}

func TestPurchase_RejectsNonPositivePrincipal(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 0})

	_, err := client.Purchase(context.Background(), decimal.Zero, bankName)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = client.Purchase(context.Background(), decimal.RequireFromString("-1"), bankName)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSell_MirrorsPurchaseLot(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 1})
	ctx := context.Background()

	purchase, err := client.Purchase(ctx, decimal.RequireFromString("100000"), bankName)
	require.NoError(t, err)

	sale, err := client.Sell(ctx, purchase, "Ahmad bin Abdullah")
	require.NoError(t, err)

	assert.Equal(t, domain.T2Sale, sale.TradeType)
	assert.Equal(t, purchase.CommodityID, sale.CommodityID)
	assert.Equal(t, purchase.CommodityType, sale.CommodityType)
	assert.True(t, purchase.Quantity.Equal(sale.Quantity))
	assert.Equal(t, 2, sale.SequenceNumber)
	assert.Equal(t, "Ahmad bin Abdullah", sale.Seller)
	assert.Equal(t, bsas.DefaultBroker, sale.Buyer)

	// 0.2% under the purchase price, rounded to 4 decimals
	expectedPrice := purchase.UnitPrice.Mul(decimal.RequireFromString("0.998")).Round(4)
	assert.True(t, expectedPrice.Equal(sale.UnitPrice))
	expectedTotal := sale.Quantity.Mul(sale.UnitPrice).Round(2)
	assert.True(t, expectedTotal.Equal(sale.TotalAmount))

	// New venue reference and certificate per leg
	assert.NotEqual(t, purchase.VenueReference, sale.VenueReference)
	assert.NotEqual(t, purchase.CertificateNumber, sale.CertificateNumber)
}

func TestSell_TimestampStrictlyAfterPurchase(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 0})
	ctx := context.Background()

	purchase, err := client.Purchase(ctx, decimal.RequireFromString("100000"), bankName)
	require.NoError(t, err)

	// Even a purchase stamped in the future cannot produce a tied or
	// inverted sale timestamp.
	purchase.Timestamp = time.Now().UTC().Add(time.Hour)

	sale, err := client.Sell(ctx, purchase, "Customer")
	require.NoError(t, err)
	assert.True(t, sale.Timestamp.After(purchase.Timestamp))
}

func TestSell_RequiresExecutedPurchase(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 0})

	_, err := client.Sell(context.Background(), domain.CommodityTrade{}, "Customer")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTimestamps_MonotonicAcrossTrades(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 0})
	ctx := context.Background()

	var last time.Time
	for i := 0; i < 50; i++ {
		trade, err := client.Purchase(ctx, decimal.RequireFromString("1000"), bankName)
		require.NoError(t, err)
		assert.True(t, trade.Timestamp.After(last), "timestamps must be strictly increasing")
		last = trade.Timestamp
	}
}

func TestVerifyCertificate(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.5, n: 0})
	ctx := context.Background()

	valid, err := client.VerifyCertificate(ctx, "CERT-AAAA11112222")
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, "Bursa Suq Al-Sila Malaysia", valid.Issuer)

	invalid, err := client.VerifyCertificate(ctx, "DOC-123")
	require.NoError(t, err)
	assert.False(t, invalid.Valid)
}

// A simulated pair straight off the venue must clear the full compliance
// rule set when the configured names are used.
func TestSimulatedPairIsCompliant(t *testing.T) {
	client := bsas.NewMockClient(fixedRand{f: 0.25, n: 2})
	ctx := context.Background()

	purchase, err := client.Purchase(ctx, decimal.RequireFromString("250000"), bankName)
	require.NoError(t, err)
	sale, err := client.Sell(ctx, purchase, "Ahmad bin Abdullah")
	require.NoError(t, err)

	report := services.NewValidationService().RunFullValidation(purchase, sale, bankName, "Ahmad bin Abdullah")
	assert.Equal(t, domain.Compliant, report.OverallResult)
	assert.Empty(t, report.FailedRules())
}
