package http

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"marketmind/internal/usecase"
)

// AnalysisHandler exposes the analysis components over HTTP
type AnalysisHandler struct {
	analysis *usecase.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysis *usecase.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// GetSentiment handles sentiment analysis requests
// GET /api/analysis/sentiment?symbol=BTC&timeframe=24h&refresh=false
func (h *AnalysisHandler) GetSentiment(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "symbol query parameter is required")
	}

	result, err := h.analysis.GetSentiment(c.Request().Context(), symbol, c.QueryParam("timeframe"), boolParam(c, "refresh"))
	if err != nil {
		return analysisError(c, symbol, err)
	}
	return SuccessResponse(c, result)
}

// GetPrediction handles price prediction requests
// GET /api/analysis/prediction?symbol=BTC&timeframe=24h&refresh=false
func (h *AnalysisHandler) GetPrediction(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "symbol query parameter is required")
	}

	result, err := h.analysis.GetPrediction(c.Request().Context(), symbol, c.QueryParam("timeframe"), boolParam(c, "refresh"))
	if err != nil {
		return analysisError(c, symbol, err)
	}
	return SuccessResponse(c, result)
}

// GetSignal handles trading signal requests
// GET /api/analysis/signal?symbol=BTC&detail=true&refresh=false
func (h *AnalysisHandler) GetSignal(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "symbol query parameter is required")
	}

	result, err := h.analysis.GetSignal(c.Request().Context(), symbol, boolParam(c, "detail"), boolParam(c, "refresh"))
	if err != nil {
		return analysisError(c, symbol, err)
	}
	return SuccessResponse(c, result)
}

// GetComprehensive handles combined analysis requests
// GET /api/analysis/comprehensive?symbol=BTC
func (h *AnalysisHandler) GetComprehensive(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "symbol query parameter is required")
	}

	result, err := h.analysis.AnalyzeComprehensive(c.Request().Context(), symbol)
	if err != nil {
		return analysisError(c, symbol, err)
	}
	return SuccessResponse(c, result)
}

// analysisError reports a failed resolution. Provider, config, and
// payload validation failures all surface as 500 with the symbol in the
// message; bad input is caught before the service call.
func analysisError(c echo.Context, symbol string, err error) error {
	return InternalServerErrorResponse(c, fmt.Sprintf("Analysis failed for %s", symbol), err)
}

func boolParam(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}
