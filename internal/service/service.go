package service

import (
	"signalist/config"
	"signalist/internal/repository"
	"signalist/pkg/cache"
	"signalist/pkg/logger"
)

type Service struct {
	StockPriceService StockPriceService
	BehaviorService   BehaviorService
	CompanyService    CompanyService
	WarmupService     WarmupService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	priceService := NewStockPriceService(cfg, log, repo.MarketDataRepo, repo.PricePointRepo, repo.ProviderSyncLogRepo)
	behaviorService := NewBehaviorService(log, priceService, repo.StockBehaviorRepo)
	companyService := NewCompanyService(cfg, log, repo.MarketDataRepo, repo.CompanyOverviewRepo, inmemoryCache)
	warmupService := NewWarmupService(cfg, log, priceService)

	return &Service{
		StockPriceService: priceService,
		BehaviorService:   behaviorService,
		CompanyService:    companyService,
		WarmupService:     warmupService,
	}
}
