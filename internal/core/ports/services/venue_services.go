package services

import (
	"context"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VenueClient is the boundary contract with the commodity trading venue.
// The bundled implementation is a simulation; a real venue integration must
// satisfy the same contract, including returning errors for timeouts and
// rejections, without the orchestrator changing.
type VenueClient interface {
	// Purchase executes the T1 leg: the bank buys a commodity lot worth the
	// financing principal. TotalAmount of the returned trade equals the
	// principal by construction, not quantity multiplied by unit price.
	Purchase(ctx context.Context, principalAmount decimal.Decimal, buyer string) (domain.CommodityTrade, error)

	// Sell executes the T2 leg: the customer resells the purchased lot to a
	// third party. The returned trade reuses the purchase's lot id, type and
	// quantity and carries a timestamp strictly later than the purchase's.
	Sell(ctx context.Context, purchase domain.CommodityTrade, seller string) (domain.CommodityTrade, error)

	// VerifyCertificate checks a trade certificate with the venue.
	VerifyCertificate(ctx context.Context, certificateNumber string) (domain.CertificateVerification, error)
}
