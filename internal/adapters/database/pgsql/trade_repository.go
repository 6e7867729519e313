package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
)

type tradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository creates a new repository for commodity trade data.
func NewTradeRepository(pool *pgxpool.Pool) portsrepo.TradeRepositoryFacade {
	return &tradeRepository{pool: pool}
}

const tradeColumns = `trade_id, financing_id, trade_type, commodity_id, commodity_type, quantity, unit_price, total_amount, venue_reference, executed_at, sequence_number, seller, buyer, certificate_number, status, created_at`

func scanTrade(row pgx.Row) (*domain.CommodityTrade, error) {
	var t domain.CommodityTrade
	err := row.Scan(
		&t.TradeID,
		&t.FinancingID,
		&t.TradeType,
		&t.CommodityID,
		&t.CommodityType,
		&t.Quantity,
		&t.UnitPrice,
		&t.TotalAmount,
		&t.VenueReference,
		&t.Timestamp,
		&t.SequenceNumber,
		&t.Seller,
		&t.Buyer,
		&t.CertificateNumber,
		&t.Status,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTradeByType retrieves the T1 or T2 leg of an application.
func (r *tradeRepository) FindTradeByType(ctx context.Context, financingID string, tradeType domain.TradeType) (*domain.CommodityTrade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM tawarruq_trades
		WHERE financing_id = $1 AND trade_type = $2;
	`
	trade, err := scanTrade(r.pool.QueryRow(ctx, query, financingID, tradeType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s trade for financing %s: %w", tradeType, financingID, err)
	}
	return trade, nil
}

// ListTradesByFinancingID retrieves all trade legs of an application in
// sequence order.
func (r *tradeRepository) ListTradesByFinancingID(ctx context.Context, financingID string) ([]domain.CommodityTrade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM tawarruq_trades
		WHERE financing_id = $1
		ORDER BY sequence_number ASC;
	`
	rows, err := r.pool.Query(ctx, query, financingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for financing %s: %w", financingID, err)
	}
	defer rows.Close()

	var trades []domain.CommodityTrade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, *trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

// SaveTradeStep persists a trade leg, its validation record and the owning
// application's status advance within a single DB transaction. Either the
// whole step lands or none of it does.
func (r *tradeRepository) SaveTradeStep(ctx context.Context, trade domain.CommodityTrade, record domain.ValidationRecord, fromStatus, toStatus domain.FinancingStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	tradeQuery := `
		INSERT INTO tawarruq_trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, tradeQuery,
		trade.TradeID,
		trade.FinancingID,
		trade.TradeType,
		trade.CommodityID,
		trade.CommodityType,
		trade.Quantity,
		trade.UnitPrice,
		trade.TotalAmount,
		trade.VenueReference,
		trade.Timestamp,
		trade.SequenceNumber,
		trade.Seller,
		trade.Buyer,
		trade.CertificateNumber,
		trade.Status,
		trade.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s trade %s: %w", trade.TradeType, trade.TradeID, err)
	}

	if err := insertValidation(ctx, tx, record); err != nil {
		return err
	}

	statusQuery := `
		UPDATE financing_applications
		SET status = $1, last_updated_at = $2
		WHERE application_id = $3 AND status = $4;
	`
	tag, err := tx.Exec(ctx, statusQuery, toStatus, time.Now().UTC(), trade.FinancingID, fromStatus)
	if err != nil {
		return fmt.Errorf("failed to advance status of application %s: %w", trade.FinancingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s is no longer in status %s", apperrors.ErrConflict, trade.FinancingID, fromStatus)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit trade step for application %s: %w", trade.FinancingID, err)
	}
	return nil
}
