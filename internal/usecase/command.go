package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"marketmind/internal/domain"
)

// TradeCommand is a parsed trade instruction:
//
//	<symbol> <BUY|SELL|AUTO> [amount]
type TradeCommand struct {
	Symbol    string
	Direction string
	Amount    float64
}

// ParseTradeCommand parses the trade command grammar. Rejection happens
// here, before any record is created or chain call attempted. The amount
// falls back to defaultAmount when omitted.
func ParseTradeCommand(text string, defaultAmount float64) (*TradeCommand, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 || len(fields) > 3 {
		return nil, fmt.Errorf("invalid trade command, expected: <symbol> <BUY|SELL|AUTO> [amount]")
	}

	symbol, err := NormalizeSymbol(fields[0])
	if err != nil {
		return nil, err
	}

	direction := strings.ToUpper(fields[1])
	switch direction {
	case domain.DirectionBuy, domain.DirectionSell, domain.DirectionAuto:
	default:
		return nil, fmt.Errorf("direction must be BUY, SELL, or AUTO, got %q", fields[1])
	}

	amount := defaultAmount
	if len(fields) == 3 {
		amount, err = strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", fields[2], err)
		}
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %g", amount)
	}

	return &TradeCommand{
		Symbol:    symbol,
		Direction: direction,
		Amount:    amount,
	}, nil
}
