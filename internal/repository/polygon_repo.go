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

// polygonRepository is the secondary market-data adapter.
type polygonRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewPolygonRepository(cfg *config.Config, log *logger.Logger) MarketDataProvider {
	return &polygonRepository{
		httpClient:     httpclient.New(cfg.Providers.Polygon.BaseURL, cfg.Providers.Polygon.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Providers.Polygon.MaxRequestPerMinute),
	}
}

func (r *polygonRepository) Name() string {
	return "polygon"
}

func (r *polygonRepository) GetDailyHistory(ctx context.Context, ticker string) ([]model.PricePoint, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -r.cfg.Providers.HistoryWindowDays)

	endpoint := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s",
		ticker, from.Format("2006-01-02"), to.Format("2006-01-02"))
	queryParams := map[string]string{
		"adjusted": "true",
		"sort":     "asc",
		"apiKey":   r.cfg.Providers.Polygon.APIKey,
	}

	var aggsResp dto.PolygonAggsResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &aggsResp)
	if err != nil {
		return nil, fmt.Errorf("%w: polygon aggs: %v", ErrTransport, err)
	}

	if err := r.checkStatus(ctx, resp, "aggs"); err != nil {
		return nil, err
	}

	if len(aggsResp.Results) == 0 {
		return nil, fmt.Errorf("%w: polygon has no aggregates for %s", ErrSymbolNotFound, ticker)
	}

	points := make([]model.PricePoint, 0, len(aggsResp.Results))
	for _, result := range aggsResp.Results {
		points = append(points, model.PricePoint{
			Date:  time.UnixMilli(result.Timestamp).UTC().Format("2006-01-02"),
			Close: result.Close,
		})
	}

	return normalizeSeries(ticker, points), nil
}

func (r *polygonRepository) GetCompanyProfile(ctx context.Context, ticker string) (*dto.CompanyProfile, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	endpoint := fmt.Sprintf("/v3/reference/tickers/%s", ticker)
	queryParams := map[string]string{
		"apiKey": r.cfg.Providers.Polygon.APIKey,
	}

	var tickerResp dto.PolygonTickerResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &tickerResp)
	if err != nil {
		return nil, fmt.Errorf("%w: polygon ticker details: %v", ErrTransport, err)
	}

	if err := r.checkStatus(ctx, resp, "ticker details"); err != nil {
		return nil, err
	}

	if tickerResp.Results == nil {
		return nil, fmt.Errorf("%w: polygon ticker details missing results for %s", ErrMalformedResponse, ticker)
	}

	detail := tickerResp.Results
	profile := &dto.CompanyProfile{Symbol: ticker}
	if detail.Name != "" {
		profile.Name = &detail.Name
	}
	if detail.SicDescription != "" {
		profile.Industry = &detail.SicDescription
	}
	if detail.MarketCap != nil {
		marketCap := fmt.Sprintf("%.0f", *detail.MarketCap)
		profile.MarketCap = &marketCap
	}
	if detail.Description != "" {
		profile.Description = &detail.Description
	}

	return profile, nil
}

func (r *polygonRepository) checkStatus(ctx context.Context, resp *httpclient.BaseResponse, endpoint string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: polygon %s", ErrRateLimited, endpoint)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: polygon %s", ErrSymbolNotFound, endpoint)
	default:
		r.logger.ErrorContext(ctx, "Polygon API returned Non-OK status",
			logger.StringField("endpoint", endpoint),
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return fmt.Errorf("%w: polygon %s returned status %d", ErrTransport, endpoint, resp.StatusCode)
	}
}
