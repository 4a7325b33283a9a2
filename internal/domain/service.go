package domain

import "context"

// InferenceService defines the stateless AI analysis endpoints.
// Each call is a single request/response against the model provider;
// retries and caching live above this interface.
type InferenceService interface {
	// AnalyzeSentiment scores market sentiment for a symbol over a timeframe
	AnalyzeSentiment(ctx context.Context, symbol, timeframe string) (*SentimentPayload, error)

	// PredictPrice produces a price prediction for a symbol over a timeframe
	PredictPrice(ctx context.Context, symbol, timeframe string) (*PredictionPayload, error)

	// GenerateSignal produces a BUY/SELL/HOLD signal for a symbol.
	// The free-text analysis is only requested when includeAnalysis is set.
	GenerateSignal(ctx context.Context, symbol string, includeAnalysis bool) (*SignalPayload, error)
}

// Balance is a chain-reported balance for an address
type Balance struct {
	Amount   string `json:"amount"` // raw integer amount in the asset's smallest unit
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// TxData describes one transfer for a chain adapter to execute.
// TokenRef is empty for the chain's native asset; for EVM it is the
// ERC-20 contract address.
type TxData struct {
	From     string
	To       string
	Amount   float64
	TokenRef string
}

// ChainAdapter is the capability set each supported chain implements.
// Exactly one adapter is bound per chain tag; selection by tag is total
// and deterministic.
type ChainAdapter interface {
	// Chain returns the chain tag this adapter serves
	Chain() string

	// GetBalance fetches the balance of an address, for the native asset
	// when tokenRef is empty or for the referenced token otherwise
	GetBalance(ctx context.Context, address, tokenRef string) (*Balance, error)

	// ExecuteTransaction submits the transfer and returns a chain reference
	ExecuteTransaction(ctx context.Context, tx TxData) (string, error)

	// IsValidAddress checks address syntax for this chain
	IsValidAddress(address string) bool
}

// PriceService defines the interface for fetching spot market prices
type PriceService interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// Notifier delivers best-effort user notifications. Delivery is
// fire-and-forget; there is no exactly-once guarantee.
type Notifier interface {
	NotifyTrade(trade *TradeRecord) error
}
