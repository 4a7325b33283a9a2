package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"marketmind/internal/domain"
)

// fakeAnalysisRepo is an in-memory append-only analysis store
type fakeAnalysisRepo struct {
	mu      sync.Mutex
	records []*domain.AnalysisRecord
	saveErr error
	getErr  error
	saves   int
}

func (f *fakeAnalysisRepo) Save(_ context.Context, record *domain.AnalysisRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAnalysisRepo) GetLatest(_ context.Context, symbol string, category domain.Category, timeframe *string) (*domain.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	var latest *domain.AnalysisRecord
	for _, r := range f.records {
		if r.Symbol != symbol || r.Category != category {
			continue
		}
		if !timeframePtrEqual(r.Timeframe, timeframe) {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func timeframePtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// fakeEngine is a scriptable inference backend
type fakeEngine struct {
	mu             sync.Mutex
	sentiment      *domain.SentimentPayload
	sentimentErr   error
	prediction     *domain.PredictionPayload
	predictionErr  error
	signal         *domain.SignalPayload
	signalErr      error
	sentimentCalls int
	signalCalls    int
}

func (f *fakeEngine) AnalyzeSentiment(_ context.Context, _, _ string) (*domain.SentimentPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentimentCalls++
	return f.sentiment, f.sentimentErr
}

func (f *fakeEngine) PredictPrice(_ context.Context, _, _ string) (*domain.PredictionPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prediction, f.predictionErr
}

func (f *fakeEngine) GenerateSignal(_ context.Context, _ string, _ bool) (*domain.SignalPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signalCalls++
	return f.signal, f.signalErr
}

// fakeTradeRepo records saves and updates in memory
type fakeTradeRepo struct {
	mu        sync.Mutex
	saved     []*domain.TradeRecord
	updated   []*domain.TradeRecord
	saveErr   error
	updateErr error
}

func (f *fakeTradeRepo) Save(_ context.Context, trade *domain.TradeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	snapshot := *trade
	f.saved = append(f.saved, &snapshot)
	return nil
}

func (f *fakeTradeRepo) Update(_ context.Context, trade *domain.TradeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	snapshot := *trade
	f.updated = append(f.updated, &snapshot)
	return nil
}

func (f *fakeTradeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.saved {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTradeRepo) GetRecentByUser(_ context.Context, userID uuid.UUID, limit int) ([]*domain.TradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.TradeRecord
	for _, t := range f.saved {
		if t.UserID == userID && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeWalletRepo serves one fixed binding
type fakeWalletRepo struct {
	binding *domain.WalletBinding
	err     error
}

func (f *fakeWalletRepo) GetDefault(_ context.Context, _ uuid.UUID, _ string) (*domain.WalletBinding, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.binding, nil
}

func (f *fakeWalletRepo) GetByUser(_ context.Context, _ uuid.UUID) ([]*domain.WalletBinding, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.WalletBinding{f.binding}, nil
}

// fakeAdapter is a scriptable chain adapter
type fakeAdapter struct {
	mu       sync.Mutex
	chainTag string
	txRef    string
	execErr  error
	execs    int
}

func (f *fakeAdapter) Chain() string { return f.chainTag }

func (f *fakeAdapter) GetBalance(_ context.Context, _, _ string) (*domain.Balance, error) {
	return &domain.Balance{Amount: "0", Symbol: "TEST", Decimals: 18}, nil
}

func (f *fakeAdapter) ExecuteTransaction(_ context.Context, _ domain.TxData) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs++
	if f.execErr != nil {
		return "", f.execErr
	}
	return f.txRef, nil
}

func (f *fakeAdapter) IsValidAddress(_ string) bool { return true }
