package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"marketmind/internal/adapter/chain"
	"marketmind/internal/domain"
)

// ExecuteParams carries one resolved trade into execution
type ExecuteParams struct {
	UserID    uuid.UUID
	Symbol    string
	Chain     string
	Amount    float64
	Direction string // BUY or SELL, already resolved
	Source    string // user or ai
	TokenRef  string // optional token reference; empty for the native asset
}

// TradeExecutor records a trade's lifecycle and delegates the chain call
// to the adapter selected by the wallet's chain tag.
type TradeExecutor struct {
	trades   domain.TradeRepository
	wallets  domain.WalletRepository
	chains   *chain.Registry
	notifier domain.Notifier
}

// NewTradeExecutor creates a new TradeExecutor. notifier may be nil.
func NewTradeExecutor(trades domain.TradeRepository, wallets domain.WalletRepository, chains *chain.Registry, notifier domain.Notifier) *TradeExecutor {
	return &TradeExecutor{
		trades:   trades,
		wallets:  wallets,
		chains:   chains,
		notifier: notifier,
	}
}

// Execute creates a PENDING trade record, runs the chain call, and
// finalizes the record as COMPLETED or FAILED. The record write after
// execution is best-effort: a store failure is logged and never masks
// the execution outcome returned to the caller.
func (e *TradeExecutor) Execute(ctx context.Context, params ExecuteParams) (*domain.TradeRecord, error) {
	wallet, err := e.wallets.GetDefault(ctx, params.UserID, params.Chain)
	if err != nil {
		return nil, err
	}

	record := domain.NewTradeRecord(params.UserID, params.Symbol, params.Chain, params.Direction, params.Source, params.Amount)
	if err := e.trades.Save(ctx, record); err != nil {
		log.Printf("[WARN] Failed to persist pending trade %s: %v", record.ID, err)
	}

	adapter, err := e.chains.ForChain(wallet.Chain)
	if err != nil {
		return e.fail(ctx, record, &domain.TradeExecutionError{Chain: wallet.Chain, Err: err})
	}

	// Venue routing is out of scope: the transfer targets the user's own
	// execution address, mirroring the adapter contract rather than a
	// real exchange flow.
	txRef, err := adapter.ExecuteTransaction(ctx, domain.TxData{
		From:     wallet.Address,
		To:       wallet.Address,
		Amount:   params.Amount,
		TokenRef: params.TokenRef,
	})
	if err != nil {
		return e.fail(ctx, record, &domain.TradeExecutionError{Chain: wallet.Chain, Err: err})
	}

	if err := record.MarkCompleted(txRef); err != nil {
		log.Printf("ERROR: Illegal trade state transition for %s: %v", record.ID, err)
	}
	e.persistOutcome(ctx, record)
	e.notify(record)

	log.Printf("[OK] Trade %s completed: %s %s %.6f on %s (tx %s)",
		record.ID, record.Direction, record.Symbol, record.Amount, record.Chain, txRef)

	return record, nil
}

// fail finalizes the record as FAILED and returns the execution error
func (e *TradeExecutor) fail(ctx context.Context, record *domain.TradeRecord, execErr *domain.TradeExecutionError) (*domain.TradeRecord, error) {
	if err := record.MarkFailed(execErr); err != nil {
		log.Printf("ERROR: Illegal trade state transition for %s: %v", record.ID, err)
	}
	e.persistOutcome(ctx, record)
	e.notify(record)

	log.Printf("ERROR: Trade %s failed: %v", record.ID, execErr)
	return record, execErr
}

func (e *TradeExecutor) persistOutcome(ctx context.Context, record *domain.TradeRecord) {
	if err := e.trades.Update(ctx, record); err != nil {
		log.Printf("[WARN] Failed to persist %s trade %s: %v", record.Status, record.ID, err)
	}
}

func (e *TradeExecutor) notify(record *domain.TradeRecord) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.NotifyTrade(record); err != nil {
		log.Printf("[WARN] Trade notification for %s failed: %v", record.ID, err)
	}
}
