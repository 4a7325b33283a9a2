package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmind/internal/adapter/chain"
	"marketmind/internal/domain"
)

func testWallet(userID uuid.UUID, chainTag string) *fakeWalletRepo {
	return &fakeWalletRepo{binding: &domain.WalletBinding{
		ID:        uuid.New(),
		UserID:    userID,
		Chain:     chainTag,
		Address:   "0xabc",
		IsDefault: true,
	}}
}

func TestExecuteCompletesTrade(t *testing.T) {
	userID := uuid.New()
	trades := &fakeTradeRepo{}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM, txRef: "0xdeadbeef"}
	executor := NewTradeExecutor(trades, testWallet(userID, domain.ChainEVM), chain.NewRegistry(adapter), nil)

	record, err := executor.Execute(context.Background(), ExecuteParams{
		UserID:    userID,
		Symbol:    "ETH",
		Chain:     domain.ChainEVM,
		Amount:    0.5,
		Direction: domain.DirectionBuy,
		Source:    domain.SourceUser,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TradeCompleted, record.Status)
	require.NotNil(t, record.TxReference)
	assert.Equal(t, "0xdeadbeef", *record.TxReference)
	assert.True(t, record.IsTerminal(), "the record must be terminal when Execute returns")

	require.Len(t, trades.saved, 1)
	assert.Equal(t, domain.TradePending, trades.saved[0].Status, "the initial persist happens before execution")
	require.Len(t, trades.updated, 1)
	assert.Equal(t, domain.TradeCompleted, trades.updated[0].Status)
}

func TestExecuteFailsTradeOnChainError(t *testing.T) {
	userID := uuid.New()
	trades := &fakeTradeRepo{}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM, execErr: errors.New("insufficient funds")}
	executor := NewTradeExecutor(trades, testWallet(userID, domain.ChainEVM), chain.NewRegistry(adapter), nil)

	record, err := executor.Execute(context.Background(), ExecuteParams{
		UserID:    userID,
		Symbol:    "ETH",
		Chain:     domain.ChainEVM,
		Amount:    0.5,
		Direction: domain.DirectionSell,
		Source:    domain.SourceUser,
	})
	require.Error(t, err)

	var execErr *domain.TradeExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, domain.ChainEVM, execErr.Chain)

	require.NotNil(t, record)
	assert.Equal(t, domain.TradeFailed, record.Status)
	require.NotNil(t, record.Error)
	assert.Contains(t, *record.Error, "insufficient funds")
	assert.Nil(t, record.TxReference)
}

func TestExecuteUnknownChainFailsTrade(t *testing.T) {
	userID := uuid.New()
	trades := &fakeTradeRepo{}
	executor := NewTradeExecutor(trades, testWallet(userID, "cosmos"), chain.NewRegistry(), nil)

	record, err := executor.Execute(context.Background(), ExecuteParams{
		UserID:    userID,
		Symbol:    "ATOM",
		Chain:     "cosmos",
		Amount:    1,
		Direction: domain.DirectionBuy,
		Source:    domain.SourceUser,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrUnknownChain)
	assert.Equal(t, domain.TradeFailed, record.Status)
}

func TestExecuteNoWalletReturnsBeforeRecordCreation(t *testing.T) {
	trades := &fakeTradeRepo{}
	wallets := &fakeWalletRepo{err: domain.ErrNoWallet}
	executor := NewTradeExecutor(trades, wallets, chain.NewRegistry(&fakeAdapter{chainTag: domain.ChainEVM}), nil)

	record, err := executor.Execute(context.Background(), ExecuteParams{
		UserID:    uuid.New(),
		Symbol:    "ETH",
		Chain:     domain.ChainEVM,
		Amount:    1,
		Direction: domain.DirectionBuy,
		Source:    domain.SourceUser,
	})
	require.ErrorIs(t, err, domain.ErrNoWallet)
	assert.Nil(t, record)
	assert.Empty(t, trades.saved, "no record is created when the wallet lookup fails")
}

func TestExecuteUpdateFailureDoesNotMaskOutcome(t *testing.T) {
	userID := uuid.New()
	trades := &fakeTradeRepo{updateErr: errors.New("db gone")}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM, txRef: "0xfeed"}
	executor := NewTradeExecutor(trades, testWallet(userID, domain.ChainEVM), chain.NewRegistry(adapter), nil)

	record, err := executor.Execute(context.Background(), ExecuteParams{
		UserID:    userID,
		Symbol:    "ETH",
		Chain:     domain.ChainEVM,
		Amount:    0.25,
		Direction: domain.DirectionBuy,
		Source:    domain.SourceAI,
	})
	require.NoError(t, err, "a store failure never masks a successful execution")
	assert.Equal(t, domain.TradeCompleted, record.Status)
}

func TestExecuteUpdateFailureDoesNotMaskExecutionError(t *testing.T) {
	userID := uuid.New()
	trades := &fakeTradeRepo{updateErr: errors.New("db gone")}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM, execErr: errors.New("nonce too low")}
	executor := NewTradeExecutor(trades, testWallet(userID, domain.ChainEVM), chain.NewRegistry(adapter), nil)

	record, err := executor.Execute(context.Background(), ExecuteParams{
		UserID:    userID,
		Symbol:    "ETH",
		Chain:     domain.ChainEVM,
		Amount:    0.25,
		Direction: domain.DirectionSell,
		Source:    domain.SourceUser,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonce too low", "the chain error wins over the store error")
	assert.Equal(t, domain.TradeFailed, record.Status)
}
