package service

import (
	"context"
	"fmt"

	"signalist/internal/analyzer"
	"signalist/internal/dto"
	"signalist/internal/model"
	"signalist/internal/repository"
	"signalist/pkg/logger"
	"signalist/pkg/utils"

	"golang.org/x/sync/singleflight"
)

// BehaviorService resolves a ticker's behavioral classification. A persisted
// record is terminal: it is returned verbatim and never recomputed, obtained
// price data notwithstanding. Recompute is the explicit escape hatch.
type BehaviorService interface {
	Analyze(ctx context.Context, ticker string) (*dto.StockBehaviorResponse, error)
	Recompute(ctx context.Context, ticker string) (*dto.StockBehaviorResponse, error)
}

type behaviorService struct {
	log          *logger.Logger
	priceService StockPriceService
	behaviorRepo repository.StockBehaviorRepository

	group singleflight.Group
}

func NewBehaviorService(
	log *logger.Logger,
	priceService StockPriceService,
	behaviorRepo repository.StockBehaviorRepository,
) BehaviorService {
	return &behaviorService{
		log:          log,
		priceService: priceService,
		behaviorRepo: behaviorRepo,
	}
}

func (s *behaviorService) Analyze(ctx context.Context, ticker string) (*dto.StockBehaviorResponse, error) {
	return s.analyze(ctx, ticker, false)
}

// Recompute supersedes any stored record with a fresh classification. It
// exists because stored records never expire on their own.
func (s *behaviorService) Recompute(ctx context.Context, ticker string) (*dto.StockBehaviorResponse, error) {
	return s.analyze(ctx, ticker, true)
}

func (s *behaviorService) analyze(ctx context.Context, ticker string, force bool) (*dto.StockBehaviorResponse, error) {
	ticker = utils.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	pipelineCtx := context.WithoutCancel(ctx)

	// Forced runs take a distinct flight key: concurrent recomputations
	// coalesce among themselves, but a forced caller never joins a regular
	// flight whose result may just be the stored row.
	key := ticker
	if force {
		key = "force:" + ticker
	}

	resultCh := s.group.DoChan(key, func() (interface{}, error) {
		return s.classifyAndPersist(pipelineCtx, ticker, force)
	})

	select {
	case res := <-resultCh:
		if res.Err != nil {
			return nil, res.Err
		}
		return dto.NewStockBehaviorResponse(res.Val.(*model.StockBehavior)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *behaviorService) classifyAndPersist(ctx context.Context, ticker string, force bool) (*model.StockBehavior, error) {
	if !force {
		existing, err := s.behaviorRepo.GetByTicker(ctx, ticker)
		if err != nil {
			s.log.WarnContext(ctx, "Behavior store read failed, falling through to computation",
				logger.StringField("ticker", ticker),
				logger.ErrorField(err))
		}
		if existing != nil {
			return existing, nil
		}
	}

	history, err := s.priceService.GetDailyHistory(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve price history for %s: %w", ticker, err)
	}

	behavior := analyzer.Classify(ticker, history.Prices)

	// The insufficient-data sentinel is handed to the caller but never
	// persisted, so a later call with real data can supersede it.
	if behavior.Insufficient() {
		s.log.InfoContext(ctx, "Insufficient price data for behavior classification",
			logger.StringField("ticker", ticker))
		return behavior, nil
	}

	if err := s.behaviorRepo.Upsert(ctx, behavior); err != nil {
		return nil, fmt.Errorf("failed to persist behavior for %s: %w", ticker, err)
	}

	s.log.InfoContext(ctx, "Persisted behavior classification",
		logger.StringField("ticker", ticker),
		logger.StringField("volatility", string(behavior.VolatilityType)),
		logger.StringField("trend", string(behavior.TrendNature)),
		logger.IntField("confidence", behavior.ConfidenceScore))

	return behavior, nil
}
