package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"signalist/internal/dto"
	"signalist/internal/model"

	"golang.org/x/time/rate"
)

// Provider failure taxonomy. Adapters translate every upstream error shape
// into one of these so the fallback chain has a single decision point.
var (
	ErrSymbolNotFound     = errors.New("symbol not found")
	ErrRateLimited        = errors.New("provider rate limited")
	ErrMalformedResponse  = errors.New("malformed provider response")
	ErrTransport          = errors.New("provider transport error")
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// MarketDataProvider is the uniform capability every upstream adapter
// implements. The returned series is ascending by date with no duplicate
// dates, and every point is stamped with the requested ticker. Adapters
// never touch the persistent store.
type MarketDataProvider interface {
	Name() string
	GetDailyHistory(ctx context.Context, ticker string) ([]model.PricePoint, error)
	GetCompanyProfile(ctx context.Context, ticker string) (*dto.CompanyProfile, error)
}

const defaultMaxRequestPerMinute = 60

// newRequestLimiter builds the per-provider limiter. An unset or zero
// per-minute budget falls back to the default instead of dividing by zero.
func newRequestLimiter(maxPerMinute int) *rate.Limiter {
	if maxPerMinute <= 0 {
		maxPerMinute = defaultMaxRequestPerMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1)
}

// normalizeSeries stamps every point with the ticker, sorts ascending by date
// and drops duplicate dates (first occurrence wins). Adapters run their raw
// points through this before returning.
func normalizeSeries(ticker string, points []model.PricePoint) []model.PricePoint {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	out := points[:0]
	prev := ""
	for _, p := range points {
		if p.Date == prev {
			continue
		}
		p.Ticker = ticker
		out = append(out, p)
		prev = p.Date
	}
	return out
}
