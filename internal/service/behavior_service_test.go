package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"signalist/internal/dto"
	"signalist/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriceService struct {
	mu     sync.Mutex
	calls  int
	prices map[string][]model.PricePoint
	err    error

	// release, when set, blocks GetDailyHistory until closed.
	release chan struct{}
}

func (f *fakePriceService) GetDailyHistory(ctx context.Context, ticker string) (*dto.StockHistoryResponse, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dto.StockHistoryResponse{Ticker: ticker, Prices: f.prices[ticker]}, nil
}

func (f *fakePriceService) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeBehaviorRepo struct {
	mu          sync.Mutex
	stored      map[string]*model.StockBehavior
	upsertErr   error
	upsertCalls int
}

func newFakeBehaviorRepo() *fakeBehaviorRepo {
	return &fakeBehaviorRepo{stored: map[string]*model.StockBehavior{}}
}

func (f *fakeBehaviorRepo) GetByTicker(ctx context.Context, ticker string) (*model.StockBehavior, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[ticker], nil
}

func (f *fakeBehaviorRepo) Upsert(ctx context.Context, behavior *model.StockBehavior) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.stored[behavior.Ticker] = behavior
	return nil
}

func TestAnalyzePersistsOnce(t *testing.T) {
	prices := &fakePriceService{prices: map[string][]model.PricePoint{
		"AAPL": {
			{Ticker: "AAPL", Date: "2025-01-01", Close: 10},
			{Ticker: "AAPL", Date: "2025-01-02", Close: 10.5},
			{Ticker: "AAPL", Date: "2025-01-03", Close: 11},
		},
	}}
	behaviorRepo := newFakeBehaviorRepo()
	svc := NewBehaviorService(testLogger(t), prices, behaviorRepo)

	first, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, model.VolatilityLow, first.VolatilityType)
	assert.Equal(t, model.TrendUp, first.TrendNature)
	assert.Equal(t, 95, first.ConfidenceScore)

	second, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	// The stored record is terminal: the second call returns it verbatim
	// without touching price data again.
	assert.Equal(t, 1, prices.Calls())
	assert.Equal(t, 1, behaviorRepo.upsertCalls)
	assert.Equal(t, first, second)
}

func TestAnalyzeInsufficientDataNotPersisted(t *testing.T) {
	prices := &fakePriceService{prices: map[string][]model.PricePoint{}}
	behaviorRepo := newFakeBehaviorRepo()
	svc := NewBehaviorService(testLogger(t), prices, behaviorRepo)

	resp, err := svc.Analyze(context.Background(), "EMPTY")

	require.NoError(t, err)
	assert.Equal(t, model.VolatilityUnknown, resp.VolatilityType)
	assert.Equal(t, model.TrendUnknown, resp.TrendNature)
	assert.Equal(t, model.SuitabilityInsufficientData, resp.Suitability)
	assert.Equal(t, 0, resp.ConfidenceScore)
	assert.Equal(t, 0, behaviorRepo.upsertCalls, "the sentinel must never reach the store")

	// Real data arriving later supersedes the sentinel outcome.
	prices.mu.Lock()
	prices.prices["EMPTY"] = []model.PricePoint{
		{Ticker: "EMPTY", Date: "2025-01-01", Close: 10},
		{Ticker: "EMPTY", Date: "2025-01-02", Close: 11},
	}
	prices.mu.Unlock()

	resp, err = svc.Analyze(context.Background(), "EMPTY")
	require.NoError(t, err)
	assert.Equal(t, model.TrendUp, resp.TrendNature)
	assert.Equal(t, 1, behaviorRepo.upsertCalls)
}

func TestRecomputeSupersedesStoredRecord(t *testing.T) {
	prices := &fakePriceService{prices: map[string][]model.PricePoint{
		"AAPL": {
			{Ticker: "AAPL", Date: "2025-01-01", Close: 12},
			{Ticker: "AAPL", Date: "2025-01-02", Close: 11},
			{Ticker: "AAPL", Date: "2025-01-03", Close: 10},
		},
	}}
	behaviorRepo := newFakeBehaviorRepo()
	behaviorRepo.stored["AAPL"] = &model.StockBehavior{
		Ticker:          "AAPL",
		VolatilityType:  model.VolatilityHigh,
		TrendNature:     model.TrendUp,
		Suitability:     model.SuitabilityShortTerm,
		ConfidenceScore: 42,
	}
	svc := NewBehaviorService(testLogger(t), prices, behaviorRepo)

	stale, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 42, stale.ConfidenceScore)
	assert.Equal(t, 0, prices.Calls())

	fresh, err := svc.Recompute(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, model.TrendDown, fresh.TrendNature)
	assert.Equal(t, 1, prices.Calls())
	assert.Equal(t, 1, behaviorRepo.upsertCalls)
}

func TestRecomputeRunsIndependentlyOfRegularAnalysis(t *testing.T) {
	release := make(chan struct{})
	prices := &fakePriceService{
		prices: map[string][]model.PricePoint{
			"AAPL": {
				{Ticker: "AAPL", Date: "2025-01-01", Close: 10},
				{Ticker: "AAPL", Date: "2025-01-02", Close: 11},
			},
		},
		release: release,
	}
	behaviorRepo := newFakeBehaviorRepo()
	svc := NewBehaviorService(testLogger(t), prices, behaviorRepo)

	forcedErr := make(chan error, 1)
	go func() {
		_, err := svc.Recompute(context.Background(), "AAPL")
		forcedErr <- err
	}()
	require.Eventually(t, func() bool {
		return prices.Calls() == 1
	}, time.Second, time.Millisecond)

	// A regular analyze starts its own flight instead of queueing behind the
	// forced one.
	regularErr := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(context.Background(), "AAPL")
		regularErr <- err
	}()
	require.Eventually(t, func() bool {
		return prices.Calls() == 2
	}, time.Second, time.Millisecond)

	close(release)
	require.NoError(t, <-forcedErr)
	require.NoError(t, <-regularErr)
}

func TestAnalyzePersistFailureSurfaces(t *testing.T) {
	prices := &fakePriceService{prices: map[string][]model.PricePoint{
		"AAPL": {
			{Ticker: "AAPL", Date: "2025-01-01", Close: 10},
			{Ticker: "AAPL", Date: "2025-01-02", Close: 11},
		},
	}}
	behaviorRepo := newFakeBehaviorRepo()
	behaviorRepo.upsertErr = errors.New("disk full")
	svc := NewBehaviorService(testLogger(t), prices, behaviorRepo)

	_, err := svc.Analyze(context.Background(), "AAPL")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAnalyzeEmptyTicker(t *testing.T) {
	svc := NewBehaviorService(testLogger(t), &fakePriceService{}, newFakeBehaviorRepo())

	_, err := svc.Analyze(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyTicker)
}
