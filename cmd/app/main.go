package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"marketmind/configs"
	"marketmind/internal/adapter"
	"marketmind/internal/adapter/chain"
	"marketmind/internal/adapter/telegram"
	"marketmind/internal/database"
	delivery "marketmind/internal/delivery/http"
	"marketmind/internal/domain"
	"marketmind/internal/infra"
	"marketmind/internal/middleware"
	"marketmind/internal/repository"
	"marketmind/internal/service"
	"marketmind/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := configs.Load()
	ctx := context.Background()

	// Database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	analysisRepo := repository.NewAnalysisRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Market data + inference
	priceService := service.NewMarketPriceService()
	engine := adapter.NewOpenAIEngine(cfg.OpenAI.APIKey, cfg.OpenAI.Model, priceService)
	if cfg.OpenAI.APIKey == "" {
		log.Println("[WARN] OPENAI_API_KEY not set, analysis requests will fail until configured")
	}

	// Chain adapters
	var adapters []domain.ChainAdapter
	if cfg.EVM.RPCURL != "" {
		evmAdapter, err := chain.NewEVMAdapter(cfg.EVM.RPCURL, cfg.EVM.ChainID, cfg.EVM.PrivateKey)
		if err != nil {
			log.Fatalf("Failed to initialize EVM adapter: %v", err)
		}
		adapters = append(adapters, evmAdapter)
	} else {
		log.Println("[WARN] EVM_RPC_URL not set, EVM adapter disabled")
	}
	adapters = append(adapters, chain.NewSolanaAdapter(cfg.Solana.RPCURL))
	registry := chain.NewRegistry(adapters...)
	log.Printf("[OK] Chain adapters registered: %v", registry.Chains())

	// Notifications
	notifier := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	// Usecases
	resolver := usecase.NewAnalysisResolver(analysisRepo)
	analysisService := usecase.NewAnalysisService(resolver, engine)
	directionResolver := usecase.NewDirectionResolver(analysisService)
	executor := usecase.NewTradeExecutor(tradeRepo, walletRepo, registry, notifier)
	tradeService := usecase.NewTradeService(directionResolver, executor, cfg.Trading.DefaultAmount)

	// Watchlist cache warmer
	scheduler := infra.NewScheduler(analysisService, cfg.Trading.Watchlist)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// HTTP delivery
	tokens := middleware.NewTokenManager(cfg.Server.JWTSecret)
	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		Tokens:          tokens,
		AuthHandler:     delivery.NewAuthHandler(userRepo, tokens),
		AnalysisHandler: delivery.NewAnalysisHandler(analysisService),
		TradeHandler:    delivery.NewTradeHandler(tradeService, tradeRepo),
		WalletHandler:   delivery.NewWalletHandler(walletRepo, registry),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("MarketMind starting on %s [env: %s]", addr, cfg.Server.Env)
	log.Printf("Watchlist: %v, default trade amount: %g", cfg.Trading.Watchlist, cfg.Trading.DefaultAmount)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}
