package repository

import (
	"signalist/config"
	"signalist/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	MarketDataRepo      MarketDataRepository
	PricePointRepo      PricePointRepository
	StockBehaviorRepo   StockBehaviorRepository
	CompanyOverviewRepo CompanyOverviewRepository
	ProviderSyncLogRepo ProviderSyncLogRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	// Fixed preference order: primary, secondary, legacy.
	marketDataRepo := NewMarketDataRepository(log,
		NewFinnhubRepository(cfg, log),
		NewPolygonRepository(cfg, log),
		NewAlphaVantageRepository(cfg, log),
	)

	return &Repository{
		MarketDataRepo:      marketDataRepo,
		PricePointRepo:      NewPricePointRepository(db),
		StockBehaviorRepo:   NewStockBehaviorRepository(db),
		CompanyOverviewRepo: NewCompanyOverviewRepository(db),
		ProviderSyncLogRepo: NewProviderSyncLogRepository(db),
	}, nil
}
