package repository

import (
	"context"
	"errors"
	"fmt"

	"signalist/internal/dto"
	"signalist/internal/model"
	"signalist/pkg/logger"
)

// MarketDataRepository drives the provider fallback chain. Price history is
// whole-response fallback: the first provider returning a non-empty series
// wins outright and series from different providers are never mixed. Company
// profiles are merged field by field in chain order instead, because
// providers are differently reliable per attribute.
type MarketDataRepository interface {
	GetDailyHistory(ctx context.Context, ticker string) ([]model.PricePoint, string, error)
	GetCompanyProfile(ctx context.Context, ticker string) (*dto.CompanyProfile, error)
}

type marketDataRepository struct {
	providers []MarketDataProvider
	log       *logger.Logger
}

// NewMarketDataRepository builds the chain in preference order; earlier
// providers are tried first.
func NewMarketDataRepository(log *logger.Logger, providers ...MarketDataProvider) MarketDataRepository {
	return &marketDataRepository{
		providers: providers,
		log:       log,
	}
}

// GetDailyHistory returns the first non-empty series in chain order along
// with the name of the provider that served it. Empty-but-ok responses count
// as failures and advance the chain. When every provider fails the error
// wraps ErrAllProvidersFailed and no partial series is ever returned.
func (r *marketDataRepository) GetDailyHistory(ctx context.Context, ticker string) ([]model.PricePoint, string, error) {
	var lastErr error
	for _, provider := range r.providers {
		points, err := provider.GetDailyHistory(ctx, ticker)
		if err == nil && len(points) == 0 {
			err = fmt.Errorf("%w: %s returned an empty series for %s", ErrSymbolNotFound, provider.Name(), ticker)
		}
		if err != nil {
			r.log.WarnContext(ctx, "Provider failed to serve price history, advancing chain",
				logger.StringField("provider", provider.Name()),
				logger.StringField("ticker", ticker),
				logger.ErrorField(err))
			lastErr = err
			continue
		}

		return points, provider.Name(), nil
	}

	return nil, "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// GetCompanyProfile queries the chain in order, merging per field: a later
// provider only contributes fields the merged result still lacks. The chain
// short-circuits once every field is populated. If no provider answers at
// all, the error wraps ErrAllProvidersFailed; otherwise the best partial
// merge is returned with unresolved fields left explicitly absent.
func (r *marketDataRepository) GetCompanyProfile(ctx context.Context, ticker string) (*dto.CompanyProfile, error) {
	var merged *dto.CompanyProfile
	var lastErr error

	for _, provider := range r.providers {
		profile, err := provider.GetCompanyProfile(ctx, ticker)
		if err != nil {
			r.log.WarnContext(ctx, "Provider failed to serve company profile, advancing chain",
				logger.StringField("provider", provider.Name()),
				logger.StringField("ticker", ticker),
				logger.ErrorField(err))
			lastErr = err
			continue
		}

		if merged == nil {
			merged = profile
		} else {
			merged.MergeFrom(profile)
		}

		if merged.Complete() {
			break
		}
	}

	if merged == nil {
		if lastErr == nil {
			lastErr = errors.New("no providers configured")
		}
		return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
	}

	return merged, nil
}
