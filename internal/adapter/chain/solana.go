package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"

	"marketmind/internal/domain"
)

// SolanaAdapter is a structural stub for the Solana chain family.
// Balance and execution return deterministic placeholder values and no
// RPC call is ever made; only address validation is real. Do not route
// production trades through this adapter.
type SolanaAdapter struct {
	rpcURL string
}

// NewSolanaAdapter creates the Solana stub adapter. The RPC URL is
// accepted for configuration symmetry but is not dialed.
func NewSolanaAdapter(rpcURL string) *SolanaAdapter {
	return &SolanaAdapter{rpcURL: rpcURL}
}

// Chain returns the chain tag this adapter serves
func (a *SolanaAdapter) Chain() string {
	return domain.ChainSolana
}

// IsValidAddress checks base58 syntax and the 32-byte key length
func (a *SolanaAdapter) IsValidAddress(address string) bool {
	decoded, err := base58.Decode(address)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

// GetBalance returns a deterministic zero balance placeholder
func (a *SolanaAdapter) GetBalance(ctx context.Context, address, tokenRef string) (*domain.Balance, error) {
	if !a.IsValidAddress(address) {
		return nil, fmt.Errorf("invalid Solana address: %s", address)
	}

	symbol := "SOL"
	if tokenRef != "" {
		symbol = "SPL"
	}

	return &domain.Balance{
		Amount:   "0",
		Symbol:   symbol,
		Decimals: 9,
	}, nil
}

// ExecuteTransaction returns a deterministic placeholder reference
// derived from the transfer parameters. Nothing is submitted to any
// network; the reference is recognizable by its "sol-stub-" prefix.
func (a *SolanaAdapter) ExecuteTransaction(ctx context.Context, tx domain.TxData) (string, error) {
	if !a.IsValidAddress(tx.To) {
		return "", fmt.Errorf("invalid recipient address: %s", tx.To)
	}

	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%.9f|%s", tx.From, tx.To, tx.Amount, tx.TokenRef))
	return "sol-stub-" + hex.EncodeToString(sum[:16]), nil
}
