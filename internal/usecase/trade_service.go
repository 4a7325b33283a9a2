package usecase

import (
	"context"

	"github.com/google/uuid"

	"marketmind/internal/domain"
)

// TradeOutcome is the result of handling one trade request.
// Declined means the signal component chose to hold and nothing was
// executed or recorded; otherwise Trade carries the final record.
type TradeOutcome struct {
	Declined bool                `json:"declined"`
	Reason   string              `json:"reason,omitempty"`
	Source   string              `json:"source"`
	Trade    *domain.TradeRecord `json:"trade,omitempty"`
}

// TradeService ties command parsing, direction resolution, and execution
// together into the trade entry point.
type TradeService struct {
	directions    *DirectionResolver
	executor      *TradeExecutor
	defaultAmount float64
}

// NewTradeService creates a new TradeService
func NewTradeService(directions *DirectionResolver, executor *TradeExecutor, defaultAmount float64) *TradeService {
	return &TradeService{
		directions:    directions,
		executor:      executor,
		defaultAmount: defaultAmount,
	}
}

// HandleCommand parses and executes a textual trade command on the given
// chain. Malformed commands are rejected before any side effect.
func (s *TradeService) HandleCommand(ctx context.Context, userID uuid.UUID, chainTag, command string) (*TradeOutcome, error) {
	cmd, err := ParseTradeCommand(command, s.defaultAmount)
	if err != nil {
		return nil, err
	}
	return s.PlaceTrade(ctx, userID, chainTag, cmd.Symbol, cmd.Direction, cmd.Amount)
}

// PlaceTrade resolves the direction and, unless declined, executes the
// trade. An execution failure returns both the FAILED record and the
// error so callers can distinguish "declined" from "attempted and failed".
func (s *TradeService) PlaceTrade(ctx context.Context, userID uuid.UUID, chainTag, symbol, direction string, amount float64) (*TradeOutcome, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if chainTag == "" {
		chainTag = domain.ChainEVM
	}
	if amount <= 0 {
		amount = s.defaultAmount
	}

	resolved, err := s.directions.Resolve(ctx, symbol, direction)
	if err != nil {
		return nil, err
	}

	if resolved.Declined {
		return &TradeOutcome{
			Declined: true,
			Reason:   resolved.Reason,
			Source:   resolved.Source,
		}, nil
	}

	record, err := s.executor.Execute(ctx, ExecuteParams{
		UserID:    userID,
		Symbol:    symbol,
		Chain:     chainTag,
		Amount:    amount,
		Direction: resolved.Direction,
		Source:    resolved.Source,
	})
	if err != nil {
		return &TradeOutcome{Source: resolved.Source, Trade: record}, err
	}

	return &TradeOutcome{Source: resolved.Source, Trade: record}, nil
}
