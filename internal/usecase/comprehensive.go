package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"marketmind/internal/domain"
)

// Bound for the whole three-way fan-out; individual provider calls carry
// their own shorter timeouts.
const comprehensiveTimeout = 30 * time.Second

// ComprehensiveResult merges the three analysis categories into one
// response. Prediction and Signal are nil when their resolution failed;
// sentiment is required and its failure fails the whole call.
type ComprehensiveResult struct {
	Symbol         string            `json:"symbol"`
	Timestamp      time.Time         `json:"timestamp"`
	Sentiment      *SentimentResult  `json:"sentiment"`
	Prediction     *PredictionResult `json:"prediction"`
	Signal         *SignalResult     `json:"signal"`
	Recommendation string            `json:"recommendation"`
}

// AnalyzeComprehensive fans out sentiment, prediction, and signal
// resolutions concurrently and joins on all three. A timed-out or failed
// advisory call does not abort its siblings.
func (s *AnalysisService) AnalyzeComprehensive(ctx context.Context, symbol string) (*ComprehensiveResult, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, comprehensiveTimeout)
	defer cancel()

	var (
		wg      sync.WaitGroup
		sent    *SentimentResult
		sentErr error
		pred    *PredictionResult
		predErr error
		sig     *SignalResult
		sigErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		sent, sentErr = s.GetSentiment(ctx, symbol, "", false)
	}()
	go func() {
		defer wg.Done()
		pred, predErr = s.GetPrediction(ctx, symbol, "", false)
	}()
	go func() {
		defer wg.Done()
		sig, sigErr = s.GetSignal(ctx, symbol, false, false)
	}()
	wg.Wait()

	// Sentiment is the minimum viable input; without it the whole
	// analysis fails.
	if sentErr != nil {
		return nil, fmt.Errorf("comprehensive analysis for %s failed: %w", symbol, sentErr)
	}

	// Prediction and signal are advisory: degrade to null slots.
	if predErr != nil {
		log.Printf("[WARN] Prediction unavailable for %s: %v", symbol, predErr)
		pred = nil
	}
	if sigErr != nil {
		log.Printf("[WARN] Signal unavailable for %s: %v", symbol, sigErr)
		sig = nil
	}

	recommendation := domain.SignalHold
	if sig != nil {
		recommendation = sig.Payload.Direction
	}

	return &ComprehensiveResult{
		Symbol:         symbol,
		Timestamp:      time.Now().UTC(),
		Sentiment:      sent,
		Prediction:     pred,
		Signal:         sig,
		Recommendation: recommendation,
	}, nil
}
