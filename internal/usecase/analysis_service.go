package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketmind/internal/domain"
)

// Default timeframes applied when a request omits one
const (
	DefaultSentimentTimeframe  = domain.Timeframe24h
	DefaultPredictionTimeframe = domain.Timeframe24h
)

// SentimentResult is a resolved sentiment analysis
type SentimentResult struct {
	Symbol    string                  `json:"symbol"`
	Timeframe string                  `json:"timeframe"`
	Payload   domain.SentimentPayload `json:"payload"`
	Cached    bool                    `json:"cached"`
	Timestamp time.Time               `json:"timestamp"`
}

// PredictionResult is a resolved price prediction
type PredictionResult struct {
	Symbol    string                   `json:"symbol"`
	Timeframe string                   `json:"timeframe"`
	Payload   domain.PredictionPayload `json:"payload"`
	Cached    bool                     `json:"cached"`
	Timestamp time.Time                `json:"timestamp"`
}

// SignalResult is a resolved trading signal
type SignalResult struct {
	Symbol    string               `json:"symbol"`
	Payload   domain.SignalPayload `json:"payload"`
	Cached    bool                 `json:"cached"`
	Timestamp time.Time            `json:"timestamp"`
}

// AnalysisService resolves per-category analyses through the cache-aside
// engine, one TTL and shape validator per category.
type AnalysisService struct {
	resolver *AnalysisResolver
	engine   domain.InferenceService
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(resolver *AnalysisResolver, engine domain.InferenceService) *AnalysisService {
	return &AnalysisService{
		resolver: resolver,
		engine:   engine,
	}
}

// GetSentiment resolves market sentiment for a symbol
func (s *AnalysisService) GetSentiment(ctx context.Context, symbol, timeframe string, forceRefresh bool) (*SentimentResult, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	timeframe, err = normalizeTimeframe(timeframe, DefaultSentimentTimeframe)
	if err != nil {
		return nil, err
	}

	key := ResolveKey{Symbol: symbol, Category: domain.CategorySentiment, Timeframe: &timeframe}
	res, err := s.resolver.Resolve(ctx, key, domain.SentimentTTL, forceRefresh, func(ctx context.Context) (interface{}, error) {
		payload, err := s.engine.AnalyzeSentiment(ctx, symbol, timeframe)
		if err != nil {
			return nil, err
		}
		if err := validateSentiment(payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sentiment analysis for %s failed: %w", symbol, err)
	}

	result := &SentimentResult{Symbol: symbol, Timeframe: timeframe, Cached: res.Cached, Timestamp: res.Timestamp}
	if err := json.Unmarshal(res.Payload, &result.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode stored sentiment for %s: %w", symbol, err)
	}
	return result, nil
}

// GetPrediction resolves a price prediction for a symbol
func (s *AnalysisService) GetPrediction(ctx context.Context, symbol, timeframe string, forceRefresh bool) (*PredictionResult, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	timeframe, err = normalizeTimeframe(timeframe, DefaultPredictionTimeframe)
	if err != nil {
		return nil, err
	}

	key := ResolveKey{Symbol: symbol, Category: domain.CategoryPrediction, Timeframe: &timeframe}
	res, err := s.resolver.Resolve(ctx, key, domain.PredictionTTL, forceRefresh, func(ctx context.Context) (interface{}, error) {
		payload, err := s.engine.PredictPrice(ctx, symbol, timeframe)
		if err != nil {
			return nil, err
		}
		if err := validatePrediction(payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return nil, fmt.Errorf("price prediction for %s failed: %w", symbol, err)
	}

	result := &PredictionResult{Symbol: symbol, Timeframe: timeframe, Cached: res.Cached, Timestamp: res.Timestamp}
	if err := json.Unmarshal(res.Payload, &result.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode stored prediction for %s: %w", symbol, err)
	}
	return result, nil
}

// GetSignal resolves a trading signal for a symbol. The optional free-text
// analysis is part of the cache key via a separate timeframe slot so a
// detailed signal never serves a plain request from cache, and vice versa.
func (s *AnalysisService) GetSignal(ctx context.Context, symbol string, includeAnalysis, forceRefresh bool) (*SignalResult, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	var variant *string
	if includeAnalysis {
		detailed := "detailed"
		variant = &detailed
	}

	key := ResolveKey{Symbol: symbol, Category: domain.CategorySignal, Timeframe: variant}
	res, err := s.resolver.Resolve(ctx, key, domain.SignalTTL, forceRefresh, func(ctx context.Context) (interface{}, error) {
		payload, err := s.engine.GenerateSignal(ctx, symbol, includeAnalysis)
		if err != nil {
			return nil, err
		}
		if err := validateSignal(payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return nil, fmt.Errorf("signal generation for %s failed: %w", symbol, err)
	}

	result := &SignalResult{Symbol: symbol, Cached: res.Cached, Timestamp: res.Timestamp}
	if err := json.Unmarshal(res.Payload, &result.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode stored signal for %s: %w", symbol, err)
	}
	return result, nil
}

// NormalizeSymbol upper-cases and validates an asset symbol
func NormalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}
	return symbol, nil
}

// normalizeTimeframe validates a timeframe against the accepted enum,
// applying the category default when empty.
func normalizeTimeframe(timeframe, fallback string) (string, error) {
	timeframe = strings.ToLower(strings.TrimSpace(timeframe))
	if timeframe == "" {
		return fallback, nil
	}
	switch timeframe {
	case domain.Timeframe1h, domain.Timeframe4h, domain.Timeframe24h, domain.Timeframe7d:
		return timeframe, nil
	default:
		return "", fmt.Errorf("timeframe must be one of 1h/4h/24h/7d, got %q", timeframe)
	}
}

func validateSentiment(p *domain.SentimentPayload) error {
	if p.Score < -1 || p.Score > 1 {
		return &domain.ValidationError{Category: domain.CategorySentiment, Reason: fmt.Sprintf("score %.4f out of range [-1,1]", p.Score)}
	}
	if p.Sources == nil {
		return &domain.ValidationError{Category: domain.CategorySentiment, Reason: "sources array is missing"}
	}
	return nil
}

func validatePrediction(p *domain.PredictionPayload) error {
	if p.CurrentPrice <= 0 {
		return &domain.ValidationError{Category: domain.CategoryPrediction, Reason: fmt.Sprintf("current_price %.8f is not positive", p.CurrentPrice)}
	}
	if p.PredictedPrice <= 0 {
		return &domain.ValidationError{Category: domain.CategoryPrediction, Reason: fmt.Sprintf("predicted_price %.8f is not positive", p.PredictedPrice)}
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return &domain.ValidationError{Category: domain.CategoryPrediction, Reason: fmt.Sprintf("confidence %.4f out of range [0,1]", p.Confidence)}
	}
	return nil
}

func validateSignal(p *domain.SignalPayload) error {
	switch p.Direction {
	case domain.SignalBuy, domain.SignalSell, domain.SignalHold:
	default:
		return &domain.ValidationError{Category: domain.CategorySignal, Reason: fmt.Sprintf("direction %q is not one of BUY/SELL/HOLD", p.Direction)}
	}
	if p.Strength < 0 || p.Strength > 1 {
		return &domain.ValidationError{Category: domain.CategorySignal, Reason: fmt.Sprintf("strength %.4f out of range [0,1]", p.Strength)}
	}
	if p.Reasons == nil {
		return &domain.ValidationError{Category: domain.CategorySignal, Reason: "reasons array is missing"}
	}
	return nil
}
