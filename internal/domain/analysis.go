package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Category identifies the kind of analysis being resolved
type Category string

const (
	CategorySentiment  Category = "sentiment"
	CategoryPrediction Category = "prediction"
	CategorySignal     Category = "signal"
)

// Per-category freshness windows. A stored record older than its category
// TTL is recomputed; it is never invalidated any other way.
const (
	SentimentTTL  = 1 * time.Hour
	PredictionTTL = 30 * time.Minute
	SignalTTL     = 15 * time.Minute
)

// Timeframe constants accepted by the analysis endpoints
const (
	Timeframe1h  = "1h"
	Timeframe4h  = "4h"
	Timeframe24h = "24h"
	Timeframe7d  = "7d"
)

// AnalysisRecord is one append-only analysis computation result.
// Records are never updated or deleted; "latest" means the greatest
// created_at for a (symbol, category, timeframe) tuple.
type AnalysisRecord struct {
	ID        uuid.UUID       `json:"id"`
	Symbol    string          `json:"symbol"`
	Category  Category        `json:"category"`
	Timeframe *string         `json:"timeframe,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// FreshAt reports whether the record is still within ttl at the given time.
func (r *AnalysisRecord) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.CreatedAt) < ttl
}

// SentimentPayload is the sentiment category payload
type SentimentPayload struct {
	Score   float64  `json:"score"`   // -1 (bearish) .. 1 (bullish)
	Sources []string `json:"sources"` // data sources the model cited
}

// PredictionPayload is the price prediction category payload
type PredictionPayload struct {
	CurrentPrice     float64 `json:"current_price"`
	PredictedPrice   float64 `json:"predicted_price"`
	PercentageChange float64 `json:"percentage_change"`
	Confidence       float64 `json:"confidence"` // 0..1
}

// SignalDirection constants
const (
	SignalBuy  = "BUY"
	SignalSell = "SELL"
	SignalHold = "HOLD"
)

// SignalPayload is the trading signal category payload.
// Analysis carries the optional free-text breakdown and is only populated
// when the caller explicitly requested it.
type SignalPayload struct {
	Direction string   `json:"direction"` // BUY, SELL, HOLD
	Strength  float64  `json:"strength"`  // 0..1
	Reasons   []string `json:"reasons"`
	Analysis  string   `json:"analysis,omitempty"`
}
