// Package bsas simulates the Bursa Suq Al-Sila' commodity trading venue.
// It mirrors the venue's boundary contract closely enough that a real
// integration can replace it without touching the orchestrator.
package bsas

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
)

const (
	// VenueSellerName is the counterparty on the T1 leg.
	VenueSellerName = "BSAS Trading Platform"

	// DefaultBroker is the third-party buyer on the T2 leg.
	DefaultBroker = "Third Party Broker"

	certificateIssuer = "Bursa Suq Al-Sila Malaysia"

	// saleDiscount models the customer realizing cash slightly below the
	// purchase price: T2 executes 0.2% under T1.
	saleDiscount = 0.998
)

// Rand is the randomness source used for commodity and price selection.
// *math/rand.Rand satisfies it; tests inject a seeded instance for
// deterministic trades.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// priceBand is a commodity's configured market price range in MYR per MT.
type priceBand struct {
	min float64
	max float64
}

var priceBands = map[domain.CommodityType]priceBand{
	domain.CPO:          {min: 3800, max: 4200},
	domain.PlasticResin: {min: 4500, max: 5000},
	domain.RBDPalmOlein: {min: 4000, max: 4400},
}

var commodityTypes = []domain.CommodityType{
	domain.CPO,
	domain.PlasticResin,
	domain.RBDPalmOlein,
}

// MockClient is the simulated venue. Timestamps come from an internal
// monotonic clock: wall-clock ties are possible at high throughput, so Sell
// never relies on time.Now being later than the purchase's stamp.
type MockClient struct {
	rng    Rand
	broker string
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewMockClient creates a simulated venue client using the given randomness
// source.
func NewMockClient(rng Rand) *MockClient {
	return &MockClient{
		rng:    rng,
		broker: DefaultBroker,
		now:    time.Now,
	}
}

var _ portssvc.VenueClient = (*MockClient)(nil)

// nextTimestamp returns a timestamp strictly later than both the previous
// one issued and the given lower bound.
func (c *MockClient) nextTimestamp(after time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UTC()
	if !ts.After(c.last) {
		ts = c.last.Add(time.Millisecond)
	}
	if !ts.After(after) {
		ts = after.Add(time.Millisecond)
	}
	c.last = ts
	return ts
}

func generateRef(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, raw[:12])
}

// Purchase executes the T1 leg. The commodity type is drawn pseudo-randomly,
// the unit price uniformly from the type's market band, and the quantity is
// principal divided by unit price rounded to 3 decimals (MT). TotalAmount is
// fixed to the financing principal by construction.
func (c *MockClient) Purchase(ctx context.Context, principalAmount decimal.Decimal, buyer string) (domain.CommodityTrade, error) {
	if err := ctx.Err(); err != nil {
		return domain.CommodityTrade{}, err
	}
	if !principalAmount.IsPositive() {
		return domain.CommodityTrade{}, fmt.Errorf("%w: principal amount must be positive", apperrors.ErrValidation)
	}

	commodityType := commodityTypes[c.rng.Intn(len(commodityTypes))]
	band := priceBands[commodityType]
	unitPrice := decimal.NewFromFloat(band.min + c.rng.Float64()*(band.max-band.min)).Round(2)
	quantity := principalAmount.Div(unitPrice).Round(3)

	return domain.CommodityTrade{
		TradeType:         domain.T1Purchase,
		CommodityID:       generateRef("COM"),
		CommodityType:     commodityType,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		TotalAmount:       principalAmount,
		VenueReference:    generateRef("BSAS"),
		Timestamp:         c.nextTimestamp(time.Time{}),
		SequenceNumber:    1,
		Seller:            VenueSellerName,
		Buyer:             buyer,
		CertificateNumber: generateRef("CERT"),
		Status:            domain.TradePending,
	}, nil
}

// Sell executes the T2 leg against a prior purchase: same lot, type and
// quantity, priced 0.2% under the purchase, with the total rounded to 2
// decimals. The timestamp is guaranteed to be strictly after the purchase's.
func (c *MockClient) Sell(ctx context.Context, purchase domain.CommodityTrade, seller string) (domain.CommodityTrade, error) {
	if err := ctx.Err(); err != nil {
		return domain.CommodityTrade{}, err
	}
	if purchase.CommodityID == "" {
		return domain.CommodityTrade{}, fmt.Errorf("%w: sale requires an executed purchase", apperrors.ErrValidation)
	}

	unitPrice := purchase.UnitPrice.Mul(decimal.NewFromFloat(saleDiscount)).Round(4)
	totalAmount := purchase.Quantity.Mul(unitPrice).Round(2)

	return domain.CommodityTrade{
		TradeType:         domain.T2Sale,
		CommodityID:       purchase.CommodityID,
		CommodityType:     purchase.CommodityType,
		Quantity:          purchase.Quantity,
		UnitPrice:         unitPrice,
		TotalAmount:       totalAmount,
		VenueReference:    generateRef("BSAS"),
		Timestamp:         c.nextTimestamp(purchase.Timestamp),
		SequenceNumber:    2,
		Seller:            seller,
		Buyer:             c.broker,
		CertificateNumber: generateRef("CERT"),
		Status:            domain.TradePending,
	}, nil
}

// VerifyCertificate is a stub: the simulation issues only well-formed
// certificates, so verification never meaningfully fails.
func (c *MockClient) VerifyCertificate(ctx context.Context, certificateNumber string) (domain.CertificateVerification, error) {
	if err := ctx.Err(); err != nil {
		return domain.CertificateVerification{}, err
	}

	return domain.CertificateVerification{
		Valid:    strings.HasPrefix(certificateNumber, "CERT-"),
		Issuer:   certificateIssuer,
		IssuedAt: c.now().UTC(),
	}, nil
}
