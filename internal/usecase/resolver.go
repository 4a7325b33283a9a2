package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"marketmind/internal/domain"
)

// ComputeFunc produces a fresh, validated payload for a cache miss
type ComputeFunc func(ctx context.Context) (interface{}, error)

// ResolveKey identifies one analysis cache entry
type ResolveKey struct {
	Symbol    string
	Category  domain.Category
	Timeframe *string
}

// Resolution is the outcome of one resolve call
type Resolution struct {
	Payload   json.RawMessage
	Cached    bool
	Timestamp time.Time
}

// AnalysisResolver implements the cache-aside retrieve-or-compute engine
// over the append-only analysis store. Two concurrent misses for the same
// key both compute and both persist; the store tolerates that because
// records are append-only and only the latest is ever read.
type AnalysisResolver struct {
	repo domain.AnalysisRepository
	now  func() time.Time
}

// NewAnalysisResolver creates a new AnalysisResolver
func NewAnalysisResolver(repo domain.AnalysisRepository) *AnalysisResolver {
	return &AnalysisResolver{
		repo: repo,
		now:  time.Now,
	}
}

// Resolve returns the latest stored payload for the key when it is younger
// than ttl, otherwise computes a fresh one via compute and appends it to
// the store. A store write failure is logged and swallowed: the computed
// result is still valid and is returned to the caller regardless.
func (r *AnalysisResolver) Resolve(ctx context.Context, key ResolveKey, ttl time.Duration, forceRefresh bool, compute ComputeFunc) (*Resolution, error) {
	if !forceRefresh {
		record, err := r.repo.GetLatest(ctx, key.Symbol, key.Category, key.Timeframe)
		if err == nil && record.FreshAt(r.now(), ttl) {
			return &Resolution{
				Payload:   record.Payload,
				Cached:    true,
				Timestamp: record.CreatedAt,
			}, nil
		}
		if err != nil && err != domain.ErrNotFound {
			// A broken read degrades to a recompute rather than failing
			// the request; the store stays authoritative for writes only.
			log.Printf("[WARN] Analysis cache read failed for %s/%s: %v", key.Symbol, key.Category, err)
		}
	}

	payload, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", key.Category, err)
	}

	createdAt := r.now().UTC()
	record := &domain.AnalysisRecord{
		ID:        uuid.New(),
		Symbol:    key.Symbol,
		Category:  key.Category,
		Timeframe: key.Timeframe,
		Payload:   raw,
		CreatedAt: createdAt,
	}

	if err := r.repo.Save(ctx, record); err != nil {
		// Persistence is best-effort: the fresh result is returned even
		// when the append fails.
		log.Printf("[WARN] Failed to persist %s analysis for %s: %v", key.Category, key.Symbol, err)
	}

	return &Resolution{
		Payload:   raw,
		Cached:    false,
		Timestamp: createdAt,
	}, nil
}
