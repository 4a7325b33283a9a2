package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmind/internal/domain"
)

func TestDirectionResolverPassesThroughExplicitDirections(t *testing.T) {
	engine := healthyEngine()
	resolver := NewDirectionResolver(newTestAnalysisService(engine))

	for _, direction := range []string{"BUY", "SELL", "buy", "sell"} {
		t.Run(direction, func(t *testing.T) {
			resolved, err := resolver.Resolve(context.Background(), "BTC", direction)
			require.NoError(t, err)
			assert.False(t, resolved.Declined)
			assert.Equal(t, domain.SourceUser, resolved.Source)
		})
	}

	assert.Equal(t, 0, engine.signalCalls, "explicit directions never consult the signal component")
}

func TestDirectionResolverAutoFollowsSignal(t *testing.T) {
	engine := healthyEngine()
	engine.signal = &domain.SignalPayload{Direction: domain.SignalSell, Strength: 0.9, Reasons: []string{"overbought"}}
	resolver := NewDirectionResolver(newTestAnalysisService(engine))

	resolved, err := resolver.Resolve(context.Background(), "BTC", "AUTO")
	require.NoError(t, err)
	assert.False(t, resolved.Declined)
	assert.Equal(t, domain.DirectionSell, resolved.Direction)
	assert.Equal(t, domain.SourceAI, resolved.Source)
}

func TestDirectionResolverAutoDeclinesOnHold(t *testing.T) {
	engine := healthyEngine()
	engine.signal = &domain.SignalPayload{Direction: domain.SignalHold, Strength: 0.3, Reasons: []string{"sideways"}}
	resolver := NewDirectionResolver(newTestAnalysisService(engine))

	resolved, err := resolver.Resolve(context.Background(), "BTC", "AUTO")
	require.NoError(t, err)
	assert.True(t, resolved.Declined)
	assert.Empty(t, resolved.Direction)
	assert.Equal(t, domain.SourceAI, resolved.Source)
	assert.Contains(t, resolved.Reason, "BTC")
}

func TestDirectionResolverAutoSignalFailure(t *testing.T) {
	engine := healthyEngine()
	engine.signalErr = errors.New("provider down")
	resolver := NewDirectionResolver(newTestAnalysisService(engine))

	_, err := resolver.Resolve(context.Background(), "BTC", "AUTO")
	require.Error(t, err)
}

func TestDirectionResolverRejectsUnknownDirection(t *testing.T) {
	resolver := NewDirectionResolver(newTestAnalysisService(healthyEngine()))

	_, err := resolver.Resolve(context.Background(), "BTC", "SHORT")
	require.Error(t, err)
}
