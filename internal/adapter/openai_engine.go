package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"marketmind/internal/domain"
)

// OpenAIEngine implements InferenceService against the OpenAI chat API.
// Every call is a single stateless request; caching and retries live in
// the resolver above it.
type OpenAIEngine struct {
	client *openai.Client
	model  string
	apiKey string
	prices domain.PriceService
}

// NewOpenAIEngine creates a new OpenAI inference engine.
// prices is optional; when present the live spot price is injected into
// prediction prompts as context.
func NewOpenAIEngine(apiKey, model string, prices domain.PriceService) domain.InferenceService {
	config := openai.DefaultConfig(apiKey)
	// Provider calls are bounded to single-digit seconds; slow responses
	// are treated as that call's own failure.
	config.HTTPClient = &http.Client{Timeout: 9 * time.Second}

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(config),
		model:  model,
		apiKey: apiKey,
		prices: prices,
	}
}

const sentimentPrompt = `You are a crypto market sentiment analyst.
Respond with a single JSON object: {"score": <float -1..1>, "sources": [<strings>]}.
Score -1 is extremely bearish, 1 extremely bullish. List the kinds of sources
(news, social, on-chain) your assessment draws on.`

const predictionPrompt = `You are a crypto price forecasting model.
Respond with a single JSON object:
{"current_price": <float>, "predicted_price": <float>, "percentage_change": <float>, "confidence": <float 0..1>}.`

const signalPrompt = `You are a crypto trading signal generator.
Respond with a single JSON object:
{"direction": "BUY"|"SELL"|"HOLD", "strength": <float 0..1>, "reasons": [<strings>]%s}.`

// AnalyzeSentiment scores market sentiment for a symbol over a timeframe
func (e *OpenAIEngine) AnalyzeSentiment(ctx context.Context, symbol, timeframe string) (*domain.SentimentPayload, error) {
	user := fmt.Sprintf("Analyze current market sentiment for %s over the last %s.", symbol, timeframe)

	content, err := e.complete(ctx, sentimentPrompt, user)
	if err != nil {
		return nil, err
	}

	payload := &domain.SentimentPayload{}
	if err := json.Unmarshal([]byte(content), payload); err != nil {
		return nil, &domain.ValidationError{Category: domain.CategorySentiment, Reason: fmt.Sprintf("malformed provider response: %v", err)}
	}

	return payload, nil
}

// PredictPrice produces a price prediction for a symbol over a timeframe
func (e *OpenAIEngine) PredictPrice(ctx context.Context, symbol, timeframe string) (*domain.PredictionPayload, error) {
	user := fmt.Sprintf("Predict the price of %s over the next %s.", symbol, timeframe)

	// Live spot price is advisory context for the model; the returned
	// payload is still validated as-is.
	if e.prices != nil {
		if price, err := e.prices.GetPrice(ctx, symbol); err == nil {
			user = fmt.Sprintf("%s The current spot price is %.8f USD.", user, price)
		} else {
			log.Printf("[WARN] Spot price unavailable for %s: %v", symbol, err)
		}
	}

	content, err := e.complete(ctx, predictionPrompt, user)
	if err != nil {
		return nil, err
	}

	payload := &domain.PredictionPayload{}
	if err := json.Unmarshal([]byte(content), payload); err != nil {
		return nil, &domain.ValidationError{Category: domain.CategoryPrediction, Reason: fmt.Sprintf("malformed provider response: %v", err)}
	}

	return payload, nil
}

// GenerateSignal produces a BUY/SELL/HOLD signal for a symbol
func (e *OpenAIEngine) GenerateSignal(ctx context.Context, symbol string, includeAnalysis bool) (*domain.SignalPayload, error) {
	analysisField := ""
	user := fmt.Sprintf("Generate a trading signal for %s.", symbol)
	if includeAnalysis {
		analysisField = `, "analysis": <string>`
		user += " Include a short free-text analysis."
	}

	content, err := e.complete(ctx, fmt.Sprintf(signalPrompt, analysisField), user)
	if err != nil {
		return nil, err
	}

	payload := &domain.SignalPayload{}
	if err := json.Unmarshal([]byte(content), payload); err != nil {
		return nil, &domain.ValidationError{Category: domain.CategorySignal, Reason: fmt.Sprintf("malformed provider response: %v", err)}
	}
	payload.Direction = strings.ToUpper(payload.Direction)

	return payload, nil
}

// complete runs one chat completion and returns the raw message content
func (e *OpenAIEngine) complete(ctx context.Context, system, user string) (string, error) {
	if e.apiKey == "" {
		return "", &domain.ConfigurationError{Setting: "OPENAI_API_KEY"}
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", &domain.UpstreamError{Provider: "openai", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &domain.UpstreamError{Provider: "openai", Err: fmt.Errorf("empty completion response")}
	}

	return resp.Choices[0].Message.Content, nil
}
