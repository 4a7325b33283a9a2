package domain

import (
	"context"

	"github.com/google/uuid"
)

// AnalysisRepository defines the append-only analysis store contract
type AnalysisRepository interface {
	// Save appends a new analysis record. Records are never updated in place.
	Save(ctx context.Context, record *AnalysisRecord) error

	// GetLatest retrieves the most recent record for a (symbol, category,
	// timeframe) tuple, or ErrNotFound when none exists.
	GetLatest(ctx context.Context, symbol string, category Category, timeframe *string) (*AnalysisRecord, error)
}

// TradeRepository defines the trade record store contract
type TradeRepository interface {
	// Save persists a new trade record
	Save(ctx context.Context, trade *TradeRecord) error

	// Update persists status, tx reference, and error of an existing record
	Update(ctx context.Context, trade *TradeRecord) error

	// GetByID retrieves a trade by ID
	GetByID(ctx context.Context, id uuid.UUID) (*TradeRecord, error)

	// GetRecentByUser retrieves the most recent trades for a user
	GetRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*TradeRecord, error)
}

// WalletRepository reads wallet bindings owned by the wallet front-end
type WalletRepository interface {
	// GetDefault retrieves the default binding for a user on a chain,
	// falling back to any binding on that chain when no default is set.
	GetDefault(ctx context.Context, userID uuid.UUID, chain string) (*WalletBinding, error)

	// GetByUser retrieves all bindings for a user
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*WalletBinding, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)
}
