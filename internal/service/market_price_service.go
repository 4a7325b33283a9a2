package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marketmind/internal/domain"
)

// MarketPriceService fetches real-time spot prices from Binance
type MarketPriceService struct {
	httpClient *http.Client
	baseURL    string
}

// NewMarketPriceService creates a new MarketPriceService
func NewMarketPriceService() *MarketPriceService {
	return &MarketPriceService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.binance.com",
	}
}

// GetPrice fetches the current USDT price for a bare asset symbol
// such as BTC or ETH.
func (s *MarketPriceService) GetPrice(ctx context.Context, symbol string) (float64, error) {
	pair := strings.ToUpper(strings.TrimSpace(symbol)) + "USDT"

	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", s.baseURL, url.QueryEscape(pair))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, &domain.UpstreamError{Provider: "binance", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, &domain.UpstreamError{
			Provider: "binance",
			Err:      fmt.Errorf("status=%d, body=%s", resp.StatusCode, string(body)),
		}
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %s: %w", ticker.Price, pair, err)
	}

	return price, nil
}

// GetPrices fetches prices for multiple symbols, skipping symbols that
// have no USDT pair and reporting them in the error.
func (s *MarketPriceService) GetPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(symbols))
	var missing []string

	for _, symbol := range symbols {
		price, err := s.GetPrice(ctx, symbol)
		if err != nil {
			missing = append(missing, symbol)
			continue
		}
		prices[strings.ToUpper(symbol)] = price
	}

	if len(missing) > 0 {
		return prices, fmt.Errorf("missing prices for symbols: %v", missing)
	}
	return prices, nil
}
