package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmind/internal/adapter/chain"
	"marketmind/internal/domain"
)

func newTestTradeService(engine *fakeEngine, trades *fakeTradeRepo, adapter *fakeAdapter) *TradeService {
	userWallet := testWallet(uuid.New(), adapter.chainTag)
	executor := NewTradeExecutor(trades, userWallet, chain.NewRegistry(adapter), nil)
	directions := NewDirectionResolver(newTestAnalysisService(engine))
	return NewTradeService(directions, executor, 0.01)
}

func TestHandleCommandExplicitBuy(t *testing.T) {
	trades := &fakeTradeRepo{}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM, txRef: "0x1"}
	svc := newTestTradeService(healthyEngine(), trades, adapter)

	outcome, err := svc.HandleCommand(context.Background(), uuid.New(), domain.ChainEVM, "BTC BUY 0.5")
	require.NoError(t, err)

	assert.False(t, outcome.Declined)
	assert.Equal(t, domain.SourceUser, outcome.Source)
	require.NotNil(t, outcome.Trade)
	assert.Equal(t, domain.TradeCompleted, outcome.Trade.Status)
	assert.Equal(t, domain.DirectionBuy, outcome.Trade.Direction)
	assert.Equal(t, 0.5, outcome.Trade.Amount)
}

func TestHandleCommandAutoFollowsSignal(t *testing.T) {
	engine := healthyEngine()
	engine.signal = &domain.SignalPayload{Direction: domain.SignalSell, Strength: 0.85, Reasons: []string{"distribution"}}
	trades := &fakeTradeRepo{}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM, txRef: "0x2"}
	svc := newTestTradeService(engine, trades, adapter)

	outcome, err := svc.HandleCommand(context.Background(), uuid.New(), domain.ChainEVM, "BTC AUTO")
	require.NoError(t, err)

	require.NotNil(t, outcome.Trade)
	assert.Equal(t, domain.DirectionSell, outcome.Trade.Direction)
	assert.Equal(t, domain.SourceAI, outcome.Trade.Source)
	assert.True(t, outcome.Trade.IsTerminal())
}

func TestHandleCommandAutoHoldDeclinesWithoutSideEffects(t *testing.T) {
	engine := healthyEngine()
	engine.signal = &domain.SignalPayload{Direction: domain.SignalHold, Strength: 0.2, Reasons: []string{"chop"}}
	trades := &fakeTradeRepo{}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM}
	svc := newTestTradeService(engine, trades, adapter)

	outcome, err := svc.HandleCommand(context.Background(), uuid.New(), domain.ChainEVM, "BTC AUTO")
	require.NoError(t, err)

	assert.True(t, outcome.Declined)
	assert.Nil(t, outcome.Trade)
	assert.NotEmpty(t, outcome.Reason)
	assert.Empty(t, trades.saved, "a declined trade creates no record")
	assert.Equal(t, 0, adapter.execs, "a declined trade never reaches the chain adapter")
}

func TestHandleCommandMalformedRejectedBeforeSideEffects(t *testing.T) {
	trades := &fakeTradeRepo{}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM}
	svc := newTestTradeService(healthyEngine(), trades, adapter)

	_, err := svc.HandleCommand(context.Background(), uuid.New(), domain.ChainEVM, "BTC")
	require.Error(t, err)
	assert.Empty(t, trades.saved)
	assert.Equal(t, 0, adapter.execs)
}

func TestPlaceTradeDefaultsChainAndAmount(t *testing.T) {
	trades := &fakeTradeRepo{}
	adapter := &fakeAdapter{chainTag: domain.ChainEVM, txRef: "0x3"}
	svc := newTestTradeService(healthyEngine(), trades, adapter)

	outcome, err := svc.PlaceTrade(context.Background(), uuid.New(), "", "eth", "buy", 0)
	require.NoError(t, err)

	require.NotNil(t, outcome.Trade)
	assert.Equal(t, domain.ChainEVM, outcome.Trade.Chain)
	assert.Equal(t, 0.01, outcome.Trade.Amount)
	assert.Equal(t, "ETH", outcome.Trade.Symbol)
}
