package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"marketmind/internal/delivery/http/dto"
	"marketmind/internal/domain"
	"marketmind/internal/middleware"
	"marketmind/internal/usecase"
)

const defaultTradeHistoryLimit = 20

// TradeHandler exposes trade placement and history over HTTP
type TradeHandler struct {
	trades    *usecase.TradeService
	tradeRepo domain.TradeRepository
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(trades *usecase.TradeService, tradeRepo domain.TradeRepository) *TradeHandler {
	return &TradeHandler{
		trades:    trades,
		tradeRepo: tradeRepo,
	}
}

// PlaceTrade handles trade placement, accepting either a textual command
// or structured fields
// POST /api/trade
func (h *TradeHandler) PlaceTrade(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Authentication required")
	}

	var req dto.PlaceTradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx := c.Request().Context()

	var outcome *usecase.TradeOutcome
	if req.Command != "" {
		outcome, err = h.trades.HandleCommand(ctx, userID, req.Chain, req.Command)
	} else {
		if req.Symbol == "" || req.Direction == "" {
			return BadRequestResponse(c, "Either command or symbol and direction are required")
		}
		outcome, err = h.trades.PlaceTrade(ctx, userID, req.Chain, req.Symbol, req.Direction, req.Amount)
	}

	if err != nil {
		if outcome != nil && outcome.Trade != nil {
			// Trade was attempted and failed; return the terminal record
			// alongside the error.
			return c.JSON(http.StatusInternalServerError, Response{
				Status:  "error",
				Message: "Trade execution failed",
				Data:    outcome,
				Error:   err.Error(),
			})
		}
		if errors.Is(err, domain.ErrNoWallet) {
			return BadRequestResponse(c, "No wallet bound for the requested chain")
		}
		return BadRequestResponse(c, err.Error())
	}

	return SuccessResponse(c, outcome)
}

// GetTrades returns the user's most recent trades
// GET /api/trades?limit=20
func (h *TradeHandler) GetTrades(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Authentication required")
	}

	limit := defaultTradeHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return BadRequestResponse(c, "limit must be an integer between 1 and 100")
		}
		limit = parsed
	}

	records, err := h.tradeRepo.GetRecentByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load trades", err)
	}
	return SuccessResponse(c, records)
}
