package service

import (
	"context"
	"fmt"
	"sync"

	"signalist/config"
	"signalist/pkg/logger"
	"signalist/pkg/utils"

	"github.com/robfig/cron/v3"
)

// WarmupService resolves a configured ticker list on a schedule so the first
// user request of the day is served from the store. Store-first resolution
// bounds the cost: a warm run spends at most one provider call per cold
// ticker and none for tickers already persisted.
type WarmupService interface {
	Start(ctx context.Context) error
	Stop()
}

type warmupService struct {
	cfg          *config.Config
	log          *logger.Logger
	priceService StockPriceService
	cron         *cron.Cron
}

func NewWarmupService(cfg *config.Config, log *logger.Logger, priceService StockPriceService) WarmupService {
	return &warmupService{
		cfg:          cfg,
		log:          log,
		priceService: priceService,
		cron:         cron.New(),
	}
}

func (s *warmupService) Start(ctx context.Context) error {
	if !s.cfg.Warmup.Enabled || len(s.cfg.Warmup.Tickers) == 0 {
		s.log.Info("Ticker warmup disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Warmup.CronExpression, func() {
		s.warm(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid warmup cron expression %q: %w", s.cfg.Warmup.CronExpression, err)
	}

	s.cron.Start()
	s.log.Info("Ticker warmup scheduled",
		logger.StringField("cron", s.cfg.Warmup.CronExpression),
		logger.IntField("tickers", len(s.cfg.Warmup.Tickers)))
	return nil
}

func (s *warmupService) Stop() {
	<-s.cron.Stop().Done()
}

// warmTickers normalizes the configured list and drops duplicates so a
// sloppy config ("aapl, AAPL ") costs one resolution, not two.
func (s *warmupService) warmTickers() []string {
	tickers := make([]string, 0, len(s.cfg.Warmup.Tickers))
	for _, raw := range s.cfg.Warmup.Tickers {
		ticker := utils.NormalizeTicker(raw)
		if ticker == "" || utils.ContainsString(tickers, ticker) {
			continue
		}
		tickers = append(tickers, ticker)
	}
	return tickers
}

func (s *warmupService) warm(ctx context.Context) {
	semaphore := make(chan struct{}, s.cfg.Warmup.MaxConcurrency)
	var wg sync.WaitGroup

	for _, ticker := range s.warmTickers() {
		if ctx.Err() != nil {
			s.log.WarnContext(ctx, "Warmup run cancelled", logger.ErrorField(ctx.Err()))
			return
		}

		ticker := ticker
		semaphore <- struct{}{}
		wg.Add(1)
		utils.GoSafe(func() {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			history, err := s.priceService.GetDailyHistory(ctx, ticker)
			if err != nil {
				s.log.ErrorContext(ctx, "Warmup resolution failed",
					logger.StringField("ticker", ticker),
					logger.ErrorField(err))
				return
			}
			s.log.DebugContext(ctx, "Warmed ticker",
				logger.StringField("ticker", ticker),
				logger.IntField("points", len(history.Prices)))
		})
	}

	wg.Wait()
}
