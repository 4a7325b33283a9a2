package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chain tags for supported execution backends
const (
	ChainEVM    = "evm"
	ChainSolana = "solana"
)

// WalletBinding links a user to an execution address on one chain.
// Bindings are managed by the wallet front-end; this core only reads them
// to pick the address a trade executes from.
type WalletBinding struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Chain     string    `json:"chain"`
	Address   string    `json:"address"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
