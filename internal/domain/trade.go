package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TradeDirection constants
const (
	DirectionBuy  = "BUY"
	DirectionSell = "SELL"
	DirectionAuto = "AUTO" // sentinel: defer the choice to the signal component
)

// TradeStatus constants. PENDING is the only non-terminal state.
const (
	TradePending   = "PENDING"
	TradeCompleted = "COMPLETED"
	TradeFailed    = "FAILED"
)

// DirectionSource marks who chose the trade direction
const (
	SourceUser = "user"
	SourceAI   = "ai"
)

// TradeRecord tracks one trade attempt through its lifecycle.
// It is created in PENDING before any chain call and transitions exactly
// once to COMPLETED or FAILED. Terminal states never revert.
type TradeRecord struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Symbol      string    `json:"symbol"`
	Chain       string    `json:"chain"`
	Amount      float64   `json:"amount"`
	Direction   string    `json:"direction"` // BUY or SELL (AUTO is resolved before creation)
	Source      string    `json:"source"`    // user or ai
	Status      string    `json:"status"`
	TxReference *string   `json:"tx_reference,omitempty"`
	Error       *string   `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTradeRecord creates a PENDING trade record
func NewTradeRecord(userID uuid.UUID, symbol, chain, direction, source string, amount float64) *TradeRecord {
	now := time.Now().UTC()
	return &TradeRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    symbol,
		Chain:     chain,
		Amount:    amount,
		Direction: direction,
		Source:    source,
		Status:    TradePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTerminal reports whether the record has reached a final state
func (t *TradeRecord) IsTerminal() bool {
	return t.Status == TradeCompleted || t.Status == TradeFailed
}

// MarkCompleted transitions PENDING -> COMPLETED with the chain reference.
// Returns an error if the record already reached a terminal state.
func (t *TradeRecord) MarkCompleted(txRef string) error {
	if t.IsTerminal() {
		return fmt.Errorf("trade %s is already %s, cannot complete", t.ID, t.Status)
	}
	t.Status = TradeCompleted
	t.TxReference = &txRef
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkFailed transitions PENDING -> FAILED and captures the execution error.
// Returns an error if the record already reached a terminal state.
func (t *TradeRecord) MarkFailed(execErr error) error {
	if t.IsTerminal() {
		return fmt.Errorf("trade %s is already %s, cannot fail", t.ID, t.Status)
	}
	msg := execErr.Error()
	t.Status = TradeFailed
	t.Error = &msg
	t.UpdatedAt = time.Now().UTC()
	return nil
}
