package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "marketmind/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	Tokens          *custommiddleware.TokenManager
	AuthHandler     *AuthHandler
	AnalysisHandler *AnalysisHandler
	TradeHandler    *TradeHandler
	WalletHandler   *WalletHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "marketmind-api",
			"timestamp": time.Now().UTC(),
		})
	})

	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
	}

	// Analysis routes (protected)
	analysis := api.Group("/analysis", config.Tokens.Auth)
	{
		analysis.GET("/sentiment", config.AnalysisHandler.GetSentiment)
		analysis.GET("/prediction", config.AnalysisHandler.GetPrediction)
		analysis.GET("/signal", config.AnalysisHandler.GetSignal)
		analysis.GET("/comprehensive", config.AnalysisHandler.GetComprehensive)
	}

	// Trade routes (protected)
	api.POST("/trade", config.TradeHandler.PlaceTrade, config.Tokens.Auth)
	api.GET("/trades", config.TradeHandler.GetTrades, config.Tokens.Auth)

	// Wallet routes (protected)
	wallet := api.Group("/wallet", config.Tokens.Auth)
	{
		wallet.GET("", config.WalletHandler.GetWallets)
		wallet.GET("/balance", config.WalletHandler.GetBalance)
	}
}
