package usecase

import (
	"context"
	"fmt"
	"strings"

	"marketmind/internal/domain"
)

// ResolvedDirection is the outcome of interpreting a trade request's
// direction. Declined means the signal recommended holding and no
// execution should be attempted.
type ResolvedDirection struct {
	Direction string // BUY or SELL; empty when declined
	Source    string // user or ai
	Declined  bool
	Reason    string
}

// DirectionResolver turns an explicit or AUTO direction into an
// executable one, consulting the signal component for AUTO.
type DirectionResolver struct {
	analysis *AnalysisService
}

// NewDirectionResolver creates a new DirectionResolver
func NewDirectionResolver(analysis *AnalysisService) *DirectionResolver {
	return &DirectionResolver{analysis: analysis}
}

// Resolve interprets the requested direction for a symbol. BUY and SELL
// pass through tagged as user-chosen; AUTO asks the signal component and
// declines on HOLD.
func (r *DirectionResolver) Resolve(ctx context.Context, symbol, requested string) (*ResolvedDirection, error) {
	switch strings.ToUpper(requested) {
	case domain.DirectionBuy, domain.DirectionSell:
		return &ResolvedDirection{
			Direction: strings.ToUpper(requested),
			Source:    domain.SourceUser,
		}, nil
	case domain.DirectionAuto:
		// fall through to the signal component
	default:
		return nil, fmt.Errorf("direction must be BUY, SELL, or AUTO, got %q", requested)
	}

	sig, err := r.analysis.GetSignal(ctx, symbol, false, false)
	if err != nil {
		return nil, fmt.Errorf("cannot auto-resolve direction for %s: %w", symbol, err)
	}

	if sig.Payload.Direction == domain.SignalHold {
		return &ResolvedDirection{
			Source:   domain.SourceAI,
			Declined: true,
			Reason:   fmt.Sprintf("signal recommends holding %s (strength %.2f), trade not placed", symbol, sig.Payload.Strength),
		}, nil
	}

	return &ResolvedDirection{
		Direction: sig.Payload.Direction,
		Source:    domain.SourceAI,
	}, nil
}
