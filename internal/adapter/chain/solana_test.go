package chain

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmind/internal/domain"
)

// 32-byte base58 key, the canonical system program address
const validSolanaAddress = "11111111111111111111111111111111"

func TestSolanaIsValidAddress(t *testing.T) {
	adapter := NewSolanaAdapter("")

	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"system program address", validSolanaAddress, true},
		{"empty", "", false},
		{"not base58", "0xdeadbeef", false},
		{"base58 but wrong length", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.IsValidAddress(tt.address))
		})
	}
}

func TestSolanaGetBalancePlaceholder(t *testing.T) {
	adapter := NewSolanaAdapter("")

	native, err := adapter.GetBalance(context.Background(), validSolanaAddress, "")
	require.NoError(t, err)
	assert.Equal(t, &domain.Balance{Amount: "0", Symbol: "SOL", Decimals: 9}, native)

	token, err := adapter.GetBalance(context.Background(), validSolanaAddress, validSolanaAddress)
	require.NoError(t, err)
	assert.Equal(t, "SPL", token.Symbol)

	_, err = adapter.GetBalance(context.Background(), "not-an-address", "")
	require.Error(t, err)
}

func TestSolanaExecuteTransactionIsDeterministic(t *testing.T) {
	adapter := NewSolanaAdapter("")
	tx := domain.TxData{From: validSolanaAddress, To: validSolanaAddress, Amount: 1.5}

	first, err := adapter.ExecuteTransaction(context.Background(), tx)
	require.NoError(t, err)
	second, err := adapter.ExecuteTransaction(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical transfers yield the same placeholder reference")
	assert.True(t, strings.HasPrefix(first, "sol-stub-"))

	tx.Amount = 2.5
	third, err := adapter.ExecuteTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestSolanaExecuteTransactionRejectsBadRecipient(t *testing.T) {
	adapter := NewSolanaAdapter("")

	_, err := adapter.ExecuteTransaction(context.Background(), domain.TxData{
		From: validSolanaAddress,
		To:   "bogus",
	})
	require.Error(t, err)
}
