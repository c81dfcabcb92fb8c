package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"signalist/config"
	"signalist/internal/dto"
	"signalist/internal/model"
	"signalist/pkg/httpclient"
	"signalist/pkg/logger"

	"golang.org/x/time/rate"
)

// finnhubRepository is the primary market-data adapter.
type finnhubRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewFinnhubRepository(cfg *config.Config, log *logger.Logger) MarketDataProvider {
	return &finnhubRepository{
		httpClient:     httpclient.New(cfg.Providers.Finnhub.BaseURL, cfg.Providers.Finnhub.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Providers.Finnhub.MaxRequestPerMinute),
	}
}

func (r *finnhubRepository) Name() string {
	return "finnhub"
}

func (r *finnhubRepository) GetDailyHistory(ctx context.Context, ticker string) ([]model.PricePoint, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -r.cfg.Providers.HistoryWindowDays)

	queryParams := map[string]string{
		"symbol":     ticker,
		"resolution": "D",
		"from":       fmt.Sprintf("%d", from.Unix()),
		"to":         fmt.Sprintf("%d", now.Unix()),
		"token":      r.cfg.Providers.Finnhub.APIKey,
	}

	var candleResp dto.FinnhubCandleResponse
	resp, err := r.httpClient.Get(ctx, "/api/v1/stock/candle", queryParams, nil, &candleResp)
	if err != nil {
		return nil, fmt.Errorf("%w: finnhub candle: %v", ErrTransport, err)
	}

	if err := r.checkStatus(ctx, resp, "candle"); err != nil {
		return nil, err
	}

	if candleResp.Status == "no_data" {
		return nil, fmt.Errorf("%w: finnhub has no candles for %s", ErrSymbolNotFound, ticker)
	}
	if candleResp.Status != "ok" {
		return nil, fmt.Errorf("%w: finnhub candle status %q", ErrMalformedResponse, candleResp.Status)
	}
	if len(candleResp.Closes) == 0 || len(candleResp.Closes) != len(candleResp.Timestamps) {
		return nil, fmt.Errorf("%w: finnhub candle arrays mismatch for %s", ErrMalformedResponse, ticker)
	}

	points := make([]model.PricePoint, 0, len(candleResp.Closes))
	for i, close := range candleResp.Closes {
		points = append(points, model.PricePoint{
			Date:  time.Unix(candleResp.Timestamps[i], 0).UTC().Format("2006-01-02"),
			Close: close,
		})
	}

	return normalizeSeries(ticker, points), nil
}

func (r *finnhubRepository) GetCompanyProfile(ctx context.Context, ticker string) (*dto.CompanyProfile, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	queryParams := map[string]string{
		"symbol": ticker,
		"token":  r.cfg.Providers.Finnhub.APIKey,
	}

	var profileResp dto.FinnhubProfileResponse
	resp, err := r.httpClient.Get(ctx, "/api/v1/stock/profile2", queryParams, nil, &profileResp)
	if err != nil {
		return nil, fmt.Errorf("%w: finnhub profile: %v", ErrTransport, err)
	}

	if err := r.checkStatus(ctx, resp, "profile"); err != nil {
		return nil, err
	}

	// Finnhub answers unknown symbols with an empty object.
	if profileResp.Ticker == "" && profileResp.Name == "" {
		return nil, fmt.Errorf("%w: finnhub has no profile for %s", ErrSymbolNotFound, ticker)
	}

	profile := &dto.CompanyProfile{Symbol: ticker}
	if profileResp.Name != "" {
		profile.Name = &profileResp.Name
	}
	if profileResp.FinnhubIndustry != "" {
		profile.Industry = &profileResp.FinnhubIndustry
	}
	if profileResp.MarketCapitalization != nil {
		marketCap := fmt.Sprintf("%.0f", *profileResp.MarketCapitalization)
		profile.MarketCap = &marketCap
	}

	return profile, nil
}

func (r *finnhubRepository) checkStatus(ctx context.Context, resp *httpclient.BaseResponse, endpoint string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: finnhub %s", ErrRateLimited, endpoint)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: finnhub %s", ErrSymbolNotFound, endpoint)
	default:
		r.logger.ErrorContext(ctx, "Finnhub API returned Non-OK status",
			logger.StringField("endpoint", endpoint),
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return fmt.Errorf("%w: finnhub %s returned status %d", ErrTransport, endpoint, resp.StatusCode)
	}
}
