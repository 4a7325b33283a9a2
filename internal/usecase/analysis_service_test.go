package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmind/internal/domain"
)

func TestGetSentimentCachesSecondCall(t *testing.T) {
	engine := healthyEngine()
	svc := newTestAnalysisService(engine)

	first, err := svc.GetSentiment(context.Background(), "btc", "", false)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "BTC", first.Symbol)
	assert.Equal(t, DefaultSentimentTimeframe, first.Timeframe)

	second, err := svc.GetSentiment(context.Background(), "BTC", "", false)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Payload, second.Payload)
	assert.Equal(t, 1, engine.sentimentCalls, "the cached call never reaches the engine")
}

func TestGetSignalDetailVariantsDoNotCrossServe(t *testing.T) {
	engine := healthyEngine()
	svc := newTestAnalysisService(engine)

	plain, err := svc.GetSignal(context.Background(), "BTC", false, false)
	require.NoError(t, err)
	assert.False(t, plain.Cached)

	detailed, err := svc.GetSignal(context.Background(), "BTC", true, false)
	require.NoError(t, err)
	assert.False(t, detailed.Cached, "a detailed signal is a separate cache entry")
	assert.Equal(t, 2, engine.signalCalls)
}

func TestGetSentimentRejectsOutOfRangeScore(t *testing.T) {
	engine := healthyEngine()
	engine.sentiment = &domain.SentimentPayload{Score: 1.5, Sources: []string{"news"}}
	svc := newTestAnalysisService(engine)

	_, err := svc.GetSentiment(context.Background(), "BTC", "", false)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestGetPredictionRejectsNonPositivePrices(t *testing.T) {
	engine := healthyEngine()
	engine.prediction = &domain.PredictionPayload{CurrentPrice: 0, PredictedPrice: 100, Confidence: 0.5}
	svc := newTestAnalysisService(engine)

	_, err := svc.GetPrediction(context.Background(), "BTC", "", false)
	require.Error(t, err)
}

func TestGetSignalRejectsUnknownDirection(t *testing.T) {
	engine := healthyEngine()
	engine.signal = &domain.SignalPayload{Direction: "MOON", Strength: 0.5, Reasons: []string{"vibes"}}
	svc := newTestAnalysisService(engine)

	_, err := svc.GetSignal(context.Background(), "BTC", false, false)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestGetSentimentRejectsUnknownTimeframe(t *testing.T) {
	svc := newTestAnalysisService(healthyEngine())

	_, err := svc.GetSentiment(context.Background(), "BTC", "90d", false)
	require.Error(t, err)
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "btc", want: "BTC"},
		{input: "  eth ", want: "ETH"},
		{input: "SOL", want: "SOL"},
		{input: "", wantErr: true},
		{input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeSymbol(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
