package repositories

import (
	"context"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
)

// TradeReader defines read operations for commodity trade records.
type TradeReader interface {
	// FindTradeByType retrieves the trade of the given type (T1 or T2) for an
	// application. Returns apperrors.ErrNotFound when no such leg exists yet.
	FindTradeByType(ctx context.Context, financingID string, tradeType domain.TradeType) (*domain.CommodityTrade, error)

	// ListTradesByFinancingID retrieves all trade legs for an application in
	// sequence order.
	ListTradesByFinancingID(ctx context.Context, financingID string) ([]domain.CommodityTrade, error)
}

// TradeWriter defines write operations for commodity trade records.
type TradeWriter interface {
	// SaveTradeStep persists a trade record together with its validation
	// record and advances the owning application's status, all inside a
	// single database transaction. The status move is compare-and-swap on
	// fromStatus; apperrors.ErrConflict is returned (and the whole step
	// rolled back) if the application has moved on concurrently.
	SaveTradeStep(ctx context.Context, trade domain.CommodityTrade, record domain.ValidationRecord, fromStatus, toStatus domain.FinancingStatus) error
}

// TradeRepositoryFacade combines all trade repository interfaces.
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
}
