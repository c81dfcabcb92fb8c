package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"signalist/internal/dto"
	"signalist/internal/model"
	"signalist/internal/repository"
	"signalist/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPriceService struct {
	resp *dto.StockHistoryResponse
	err  error
}

func (s *stubPriceService) GetDailyHistory(ctx context.Context, ticker string) (*dto.StockHistoryResponse, error) {
	return s.resp, s.err
}

type stubBehaviorService struct {
	analyzeCalls   int
	recomputeCalls int
	resp           *dto.StockBehaviorResponse
}

func (s *stubBehaviorService) Analyze(ctx context.Context, ticker string) (*dto.StockBehaviorResponse, error) {
	s.analyzeCalls++
	return s.resp, nil
}

func (s *stubBehaviorService) Recompute(ctx context.Context, ticker string) (*dto.StockBehaviorResponse, error) {
	s.recomputeCalls++
	return s.resp, nil
}

type stubCompanyService struct {
	overview *model.CompanyOverview
	err      error
}

func (s *stubCompanyService) GetOverview(ctx context.Context, symbol string) (*model.CompanyOverview, error) {
	return s.overview, s.err
}

func newTestHandler(svc *service.Service) *HttpAPIHandler {
	return NewHttpAPIHandler(context.Background(), echo.New(), goValidator.New(), svc)
}

func performRequest(t *testing.T, h *HttpAPIHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	h.SetupRoutes()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.echo.ServeHTTP(rec, req)
	return rec
}

func TestGetStockHistoryEndpoint(t *testing.T) {
	t.Run("resolved history returns 200", func(t *testing.T) {
		h := newTestHandler(&service.Service{
			StockPriceService: &stubPriceService{resp: &dto.StockHistoryResponse{
				Ticker: "AAPL",
				Prices: []model.PricePoint{{Ticker: "AAPL", Date: "2025-01-01", Close: 10}},
			}},
		})

		rec := performRequest(t, h, "/api/stocks/AAPL/history")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ticker":"AAPL"`)
		assert.Contains(t, rec.Body.String(), `"2025-01-01"`)
	})

	t.Run("degraded empty history is still 200", func(t *testing.T) {
		h := newTestHandler(&service.Service{
			StockPriceService: &stubPriceService{resp: &dto.StockHistoryResponse{
				Ticker: "AAPL",
				Prices: []model.PricePoint{},
			}},
		})

		rec := performRequest(t, h, "/api/stocks/AAPL/history")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"prices":[]`)
	})

	t.Run("invalid ticker returns 400", func(t *testing.T) {
		h := newTestHandler(&service.Service{StockPriceService: &stubPriceService{}})

		rec := performRequest(t, h, "/api/stocks/AA..PL/history")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetStockBehaviorEndpoint(t *testing.T) {
	behaviorResp := &dto.StockBehaviorResponse{
		Ticker:          "AAPL",
		VolatilityType:  model.VolatilityLow,
		TrendNature:     model.TrendUp,
		Suitability:     model.SuitabilityLongTerm,
		ConfidenceScore: 95,
	}

	t.Run("plain lookup analyzes", func(t *testing.T) {
		behavior := &stubBehaviorService{resp: behaviorResp}
		h := newTestHandler(&service.Service{BehaviorService: behavior})

		rec := performRequest(t, h, "/api/behavior/AAPL")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, behavior.analyzeCalls)
		assert.Equal(t, 0, behavior.recomputeCalls)
		assert.Contains(t, rec.Body.String(), `"suitability":"LONG_TERM_INVESTOR"`)
	})

	t.Run("force=true recomputes", func(t *testing.T) {
		behavior := &stubBehaviorService{resp: behaviorResp}
		h := newTestHandler(&service.Service{BehaviorService: behavior})

		rec := performRequest(t, h, "/api/behavior/AAPL?force=true")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, behavior.analyzeCalls)
		assert.Equal(t, 1, behavior.recomputeCalls)
	})
}

func TestGetCompanyOverviewEndpoint(t *testing.T) {
	t.Run("resolved overview returns 200", func(t *testing.T) {
		name := "Apple Inc"
		h := newTestHandler(&service.Service{
			CompanyService: &stubCompanyService{overview: &model.CompanyOverview{
				Symbol: "AAPL",
				Name:   &name,
			}},
		})

		rec := performRequest(t, h, "/api/company/AAPL")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"Apple Inc"`)
	})

	t.Run("provider exhaustion returns 404", func(t *testing.T) {
		h := newTestHandler(&service.Service{
			CompanyService: &stubCompanyService{
				err: fmt.Errorf("%w: upstream outage", repository.ErrAllProvidersFailed),
			},
		})

		rec := performRequest(t, h, "/api/company/NOPE")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "no company data for NOPE")
	})

	t.Run("internal failure returns 500, not 404", func(t *testing.T) {
		h := newTestHandler(&service.Service{
			CompanyService: &stubCompanyService{err: errors.New("overview store unavailable")},
		})

		rec := performRequest(t, h, "/api/company/AAPL")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "overview store unavailable")
	})
}
