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

// WalletRepositoryImpl implements the WalletRepository interface
type WalletRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) domain.WalletRepository {
	return &WalletRepositoryImpl{db: db}
}

// GetDefault retrieves the default binding for a user on a chain. When no
// binding is flagged as default, the oldest binding on that chain is used.
func (r *WalletRepositoryImpl) GetDefault(ctx context.Context, userID uuid.UUID, chain string) (*domain.WalletBinding, error) {
	query := `
		SELECT id, user_id, chain, address, is_default, created_at
		FROM wallet_bindings
		WHERE user_id = $1 AND chain = $2
		ORDER BY is_default DESC, created_at ASC
		LIMIT 1
	`

	binding := &domain.WalletBinding{}
	err := r.db.QueryRow(ctx, query, userID, chain).Scan(
		&binding.ID,
		&binding.UserID,
		&binding.Chain,
		&binding.Address,
		&binding.IsDefault,
		&binding.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoWallet
		}
		return nil, fmt.Errorf("failed to get wallet binding: %w", err)
	}

	return binding, nil
}

// GetByUser retrieves all bindings for a user
func (r *WalletRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WalletBinding, error) {
	query := `
		SELECT id, user_id, chain, address, is_default, created_at
		FROM wallet_bindings
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet bindings: %w", err)
	}
	defer rows.Close()

	var bindings []*domain.WalletBinding
	for rows.Next() {
		binding := &domain.WalletBinding{}
		err := rows.Scan(
			&binding.ID,
			&binding.UserID,
			&binding.Chain,
			&binding.Address,
			&binding.IsDefault,
			&binding.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet binding: %w", err)
		}
		bindings = append(bindings, binding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet bindings: %w", err)
	}

	return bindings, nil
}
