package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketmind/internal/domain"
)

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// Save persists a new trade record
func (r *TradeRepositoryImpl) Save(ctx context.Context, trade *domain.TradeRecord) error {
	query := `
		INSERT INTO trade_records (
			id, user_id, symbol, chain, amount, direction, source,
			status, tx_reference, error, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.db.Exec(ctx, query,
		trade.ID,
		trade.UserID,
		trade.Symbol,
		trade.Chain,
		trade.Amount,
		trade.Direction,
		trade.Source,
		trade.Status,
		trade.TxReference,
		trade.Error,
		trade.CreatedAt,
		trade.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save trade record: %w", err)
	}

	return nil
}

// Update persists the outcome of a trade. The guard on status keeps
// terminal records from being overwritten by a late writer.
func (r *TradeRepositoryImpl) Update(ctx context.Context, trade *domain.TradeRecord) error {
	query := `
		UPDATE trade_records
		SET status = $1, tx_reference = $2, error = $3, updated_at = $4
		WHERE id = $5 AND status = 'PENDING'
	`

	cmdTag, err := r.db.Exec(ctx, query,
		trade.Status,
		trade.TxReference,
		trade.Error,
		trade.UpdatedAt,
		trade.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("trade %s not found or already finalized", trade.ID)
	}

	return nil
}

// GetByID retrieves a trade by ID
func (r *TradeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeRecord, error) {
	query := `
		SELECT id, user_id, symbol, chain, amount, direction, source,
		       status, tx_reference, error, created_at, updated_at
		FROM trade_records
		WHERE id = $1
	`

	trade := &domain.TradeRecord{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Symbol,
		&trade.Chain,
		&trade.Amount,
		&trade.Direction,
		&trade.Source,
		&trade.Status,
		&trade.TxReference,
		&trade.Error,
		&trade.CreatedAt,
		&trade.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trade by ID: %w", err)
	}

	return trade, nil
}

// GetRecentByUser retrieves the most recent trades for a user
func (r *TradeRepositoryImpl) GetRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.TradeRecord, error) {
	query := `
		SELECT id, user_id, symbol, chain, amount, direction, source,
		       status, tx_reference, error, created_at, updated_at
		FROM trade_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent trades: %w", err)
	}
	defer rows.Close()

	var trades []*domain.TradeRecord
	for rows.Next() {
		trade := &domain.TradeRecord{}
		err := rows.Scan(
			&trade.ID,
			&trade.UserID,
			&trade.Symbol,
			&trade.Chain,
			&trade.Amount,
			&trade.Direction,
			&trade.Source,
			&trade.Status,
			&trade.TxReference,
			&trade.Error,
			&trade.CreatedAt,
			&trade.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}
