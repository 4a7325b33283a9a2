package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketmind/internal/domain"
)

// AnalysisRepositoryImpl implements the AnalysisRepository interface
type AnalysisRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository creates a new AnalysisRepository
func NewAnalysisRepository(db *pgxpool.Pool) domain.AnalysisRepository {
	return &AnalysisRepositoryImpl{db: db}
}

// Save appends a new analysis record. Existing records are never touched.
func (r *AnalysisRepositoryImpl) Save(ctx context.Context, record *domain.AnalysisRecord) error {
	query := `
		INSERT INTO analysis_records (
			id, symbol, category, timeframe, payload, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Symbol,
		record.Category,
		record.Timeframe,
		record.Payload,
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent record for a (symbol, category, timeframe)
// tuple. The NULL timeframe matches only records stored without one.
func (r *AnalysisRepositoryImpl) GetLatest(ctx context.Context, symbol string, category domain.Category, timeframe *string) (*domain.AnalysisRecord, error) {
	query := `
		SELECT id, symbol, category, timeframe, payload, created_at
		FROM analysis_records
		WHERE symbol = $1 AND category = $2 AND timeframe IS NOT DISTINCT FROM $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	record := &domain.AnalysisRecord{}
	err := r.db.QueryRow(ctx, query, symbol, category, timeframe).Scan(
		&record.ID,
		&record.Symbol,
		&record.Category,
		&record.Timeframe,
		&record.Payload,
		&record.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest analysis record: %w", err)
	}

	return record, nil
}
