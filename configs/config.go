package configs

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	EVM      EVMConfig
	Solana   SolanaConfig
	Trading  TradingConfig
	Telegram TelegramConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port      string
	Env       string
	JWTSecret string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// OpenAIConfig holds inference provider configuration
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// EVMConfig holds EVM chain configuration
type EVMConfig struct {
	RPCURL     string
	ChainID    string
	PrivateKey string // signing key for the execution wallet; empty disables real execution
}

// SolanaConfig holds Solana chain configuration
type SolanaConfig struct {
	RPCURL string
}

// TradingConfig holds trade execution configuration
type TradingConfig struct {
	DefaultAmount float64  // amount used when the trade command omits one
	Watchlist     []string // symbols warmed by the scheduled comprehensive scan
}

// TelegramConfig holds notification configuration
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			Env:       getEnv("GO_ENV", "development"),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		EVM: EVMConfig{
			RPCURL:     getEnv("EVM_RPC_URL", ""),
			ChainID:    getEnv("EVM_CHAIN_ID", "1"),
			PrivateKey: getEnv("EVM_PRIVATE_KEY", ""),
		},
		Solana: SolanaConfig{
			RPCURL: getEnv("SOLANA_RPC_URL", ""),
		},
		Trading: TradingConfig{
			DefaultAmount: getEnvFloat("TRADE_DEFAULT_AMOUNT", 0.01),
			Watchlist:     getEnvList("ANALYSIS_WATCHLIST", []string{"BTC", "ETH", "SOL"}),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable or returns a default
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
