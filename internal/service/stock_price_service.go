package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"signalist/config"
	"signalist/internal/dto"
	"signalist/internal/model"
	"signalist/internal/repository"
	"signalist/pkg/logger"
	"signalist/pkg/utils"

	"golang.org/x/sync/singleflight"
)

var ErrEmptyTicker = errors.New("ticker must not be empty")

// StockPriceService resolves a ticker's daily price history. Resolution is
// store-first and coalesced: concurrent requests for one ticker share a
// single pipeline run, and durable reuse across time is the store's job.
type StockPriceService interface {
	GetDailyHistory(ctx context.Context, ticker string) (*dto.StockHistoryResponse, error)
}

type stockPriceService struct {
	cfg            *config.Config
	log            *logger.Logger
	marketDataRepo repository.MarketDataRepository
	pricePointRepo repository.PricePointRepository
	syncLogRepo    repository.ProviderSyncLogRepository

	// group deduplicates concurrent in-flight resolutions per ticker. An
	// entry lives only while its pipeline runs; completions (success or
	// failure) always drop the entry, so a later retry starts fresh.
	group singleflight.Group
}

func NewStockPriceService(
	cfg *config.Config,
	log *logger.Logger,
	marketDataRepo repository.MarketDataRepository,
	pricePointRepo repository.PricePointRepository,
	syncLogRepo repository.ProviderSyncLogRepository,
) StockPriceService {
	return &stockPriceService{
		cfg:            cfg,
		log:            log,
		marketDataRepo: marketDataRepo,
		pricePointRepo: pricePointRepo,
		syncLogRepo:    syncLogRepo,
	}
}

// GetDailyHistory returns the ticker's price history, fetching and
// persisting it on a store miss. Provider exhaustion degrades to an empty
// series with the ticker echoed back; the store stays unwritten in that case
// so a later retry can still resolve real data.
func (s *stockPriceService) GetDailyHistory(ctx context.Context, ticker string) (*dto.StockHistoryResponse, error) {
	ticker = utils.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	// The pipeline runs detached from any single caller: a caller that
	// abandons its request must not cancel work other waiters share.
	pipelineCtx := context.WithoutCancel(ctx)

	resultCh := s.group.DoChan(ticker, func() (interface{}, error) {
		return s.resolve(pipelineCtx, ticker)
	})

	select {
	case res := <-resultCh:
		if res.Err != nil {
			return nil, res.Err
		}
		return &dto.StockHistoryResponse{
			Ticker: ticker,
			Prices: res.Val.([]model.PricePoint),
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// resolve is the single pipeline run per in-flight ticker: store lookup,
// fallback fetch on miss, one atomic batch persist.
func (s *stockPriceService) resolve(ctx context.Context, ticker string) ([]model.PricePoint, error) {
	existing, err := s.pricePointRepo.GetByTicker(ctx, ticker)
	if err != nil {
		// A store read failure fails open to a fresh fetch rather than
		// blocking the request.
		s.log.WarnContext(ctx, "Price store read failed, falling through to providers",
			logger.StringField("ticker", ticker),
			logger.ErrorField(err))
	}
	if len(existing) > 0 {
		return existing, nil
	}

	points, providerName, err := s.marketDataRepo.GetDailyHistory(ctx, ticker)
	if err != nil {
		if errors.Is(err, repository.ErrAllProvidersFailed) {
			s.log.WarnContext(ctx, "No provider could serve price history",
				logger.StringField("ticker", ticker),
				logger.ErrorField(err))
			return []model.PricePoint{}, nil
		}
		return nil, err
	}

	// The whole window is persisted as one unit before anyone sees it; a
	// failed persist is surfaced, never reported as success.
	if err := s.pricePointRepo.UpsertBatch(ctx, points); err != nil {
		return nil, fmt.Errorf("failed to persist price history for %s: %w", ticker, err)
	}

	s.recordSync(ctx, ticker, providerName, len(points))

	s.log.InfoContext(ctx, "Resolved and persisted price history",
		logger.StringField("ticker", ticker),
		logger.StringField("provider", providerName),
		logger.IntField("points", len(points)))

	return points, nil
}

// recordSync writes the audit row for a successful upstream resolution.
// Best effort: a failure here must not fail the request.
func (s *stockPriceService) recordSync(ctx context.Context, ticker, providerName string, pointCount int) {
	now := time.Now().UTC()
	window := model.SyncWindow{
		From: now.AddDate(0, 0, -s.cfg.Providers.HistoryWindowDays).Format("2006-01-02"),
		To:   now.Format("2006-01-02"),
		Days: s.cfg.Providers.HistoryWindowDays,
	}
	if err := s.syncLogRepo.Create(ctx, ticker, providerName, pointCount, window); err != nil {
		s.log.WarnContext(ctx, "Failed to write provider sync log",
			logger.StringField("ticker", ticker),
			logger.ErrorField(err))
	}
}
