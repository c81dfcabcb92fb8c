package service

import (
	"context"
	"errors"
	"fmt"

	"signalist/config"
	"signalist/internal/model"
	"signalist/internal/repository"
	"signalist/pkg/cache"
	"signalist/pkg/logger"
	"signalist/pkg/utils"
)

const keyCompanyOverview = "company_overview:%s"

// CompanyService resolves a merged company profile for a symbol and keeps
// the durable copy current. A short-TTL read cache sits in front of the
// resolution so repeated profile lookups stay cheap.
type CompanyService interface {
	GetOverview(ctx context.Context, symbol string) (*model.CompanyOverview, error)
}

type companyService struct {
	cfg            *config.Config
	log            *logger.Logger
	marketDataRepo repository.MarketDataRepository
	overviewRepo   repository.CompanyOverviewRepository
	cache          cache.Cache
}

func NewCompanyService(
	cfg *config.Config,
	log *logger.Logger,
	marketDataRepo repository.MarketDataRepository,
	overviewRepo repository.CompanyOverviewRepository,
	inmemoryCache cache.Cache,
) CompanyService {
	return &companyService{
		cfg:            cfg,
		log:            log,
		marketDataRepo: marketDataRepo,
		overviewRepo:   overviewRepo,
		cache:          inmemoryCache,
	}
}

func (s *companyService) GetOverview(ctx context.Context, symbol string) (*model.CompanyOverview, error) {
	symbol = utils.NormalizeTicker(symbol)
	if symbol == "" {
		return nil, ErrEmptyTicker
	}

	cacheKey := fmt.Sprintf(keyCompanyOverview, symbol)
	if cached, found := cache.GetTyped[*model.CompanyOverview](s.cache, cacheKey); found {
		return cached, nil
	}

	profile, err := s.marketDataRepo.GetCompanyProfile(ctx, symbol)
	if err != nil {
		if !errors.Is(err, repository.ErrAllProvidersFailed) {
			return nil, err
		}
		// Every provider is down; the last persisted overview is still the
		// best answer available.
		stored, storeErr := s.overviewRepo.GetBySymbol(ctx, symbol)
		if storeErr != nil {
			s.log.WarnContext(ctx, "Overview store read failed after provider exhaustion",
				logger.StringField("symbol", symbol),
				logger.ErrorField(storeErr))
		}
		if stored != nil {
			return stored, nil
		}
		return nil, err
	}

	overview := profile.ToModel()
	if err := s.overviewRepo.Upsert(ctx, overview); err != nil {
		// The resolved profile is still good; losing one upsert only costs
		// freshness of the durable copy.
		s.log.WarnContext(ctx, "Failed to persist company overview",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
	}

	s.cache.Set(cacheKey, overview, s.cfg.Cache.OverviewTTL)

	return overview, nil
}
