package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"signalist/config"
	"signalist/internal/dto"
	"signalist/internal/model"
	"signalist/pkg/httpclient"
	"signalist/pkg/logger"

	"golang.org/x/time/rate"
)

// alphaVantageRepository is the legacy adapter, last in the fallback chain.
// AlphaVantage signals quota exhaustion with a 200 response carrying a Note
// body, so rate limiting is detected from the payload, not the status code.
type alphaVantageRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewAlphaVantageRepository(cfg *config.Config, log *logger.Logger) MarketDataProvider {
	return &alphaVantageRepository{
		httpClient:     httpclient.New(cfg.Providers.AlphaVantage.BaseURL, cfg.Providers.AlphaVantage.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Providers.AlphaVantage.MaxRequestPerMinute),
	}
}

func (r *alphaVantageRepository) Name() string {
	return "alphavantage"
}

func (r *alphaVantageRepository) GetDailyHistory(ctx context.Context, ticker string) ([]model.PricePoint, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	queryParams := map[string]string{
		"function": "TIME_SERIES_DAILY",
		"symbol":   ticker,
		"apikey":   r.cfg.Providers.AlphaVantage.APIKey,
	}

	var dailyResp dto.AlphaVantageDailyResponse
	resp, err := r.httpClient.Get(ctx, "/query", queryParams, nil, &dailyResp)
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage daily: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "AlphaVantage API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("%w: alphavantage returned status %d", ErrTransport, resp.StatusCode)
	}

	if dailyResp.Note != "" || dailyResp.Information != "" {
		return nil, fmt.Errorf("%w: alphavantage quota note for %s", ErrRateLimited, ticker)
	}

	if len(dailyResp.TimeSeries) == 0 {
		return nil, fmt.Errorf("%w: alphavantage has no daily series for %s", ErrSymbolNotFound, ticker)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -r.cfg.Providers.HistoryWindowDays).Format("2006-01-02")

	points := make([]model.PricePoint, 0, len(dailyResp.TimeSeries))
	for date, bar := range dailyResp.TimeSeries {
		if date < cutoff {
			continue
		}
		close, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: alphavantage close %q for %s: %v", ErrMalformedResponse, bar.Close, ticker, err)
		}
		points = append(points, model.PricePoint{
			Date:  date,
			Close: close,
		})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: alphavantage series for %s entirely outside window", ErrSymbolNotFound, ticker)
	}

	return normalizeSeries(ticker, points), nil
}

func (r *alphaVantageRepository) GetCompanyProfile(ctx context.Context, ticker string) (*dto.CompanyProfile, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	queryParams := map[string]string{
		"function": "OVERVIEW",
		"symbol":   ticker,
		"apikey":   r.cfg.Providers.AlphaVantage.APIKey,
	}

	var overviewResp dto.AlphaVantageOverviewResponse
	resp, err := r.httpClient.Get(ctx, "/query", queryParams, nil, &overviewResp)
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage overview: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "AlphaVantage API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("%w: alphavantage returned status %d", ErrTransport, resp.StatusCode)
	}

	if overviewResp.Note != "" {
		return nil, fmt.Errorf("%w: alphavantage quota note for %s", ErrRateLimited, ticker)
	}

	if overviewResp.Symbol == "" && overviewResp.Name == "" {
		return nil, fmt.Errorf("%w: alphavantage has no overview for %s", ErrSymbolNotFound, ticker)
	}

	profile := &dto.CompanyProfile{Symbol: ticker}
	if overviewResp.Name != "" {
		profile.Name = &overviewResp.Name
	}
	if overviewResp.Sector != "" {
		profile.Sector = &overviewResp.Sector
	}
	if overviewResp.Industry != "" {
		profile.Industry = &overviewResp.Industry
	}
	if overviewResp.MarketCapitalization != "" {
		profile.MarketCap = &overviewResp.MarketCapitalization
	}
	if overviewResp.Description != "" {
		profile.Description = &overviewResp.Description
	}

	return profile, nil
}
