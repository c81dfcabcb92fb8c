package http

import (
	"errors"
	"net/http"
	"strings"

	"signalist/internal/dto"
	"signalist/internal/repository"
	"signalist/internal/service"

	"github.com/labstack/echo/v4"
)

type tickerParam struct {
	Ticker string `param:"ticker" validate:"required,alphanum,uppercase,max=10"`
}

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	base.GET("/stocks/:ticker/history", h.GetStockHistory)
	base.GET("/company/:ticker", h.GetCompanyOverview)
	base.GET("/behavior/:ticker", h.GetStockBehavior)
}

// GetStockHistory serves the resolved price history. Provider outages
// degrade to an empty list with the ticker echoed back, never a 5xx.
func (h *HttpAPIHandler) GetStockHistory(c echo.Context) error {
	ticker, err := h.bindTicker(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	history, err := h.service.StockPriceService.GetDailyHistory(c.Request().Context(), ticker)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTicker) {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", history))
}

func (h *HttpAPIHandler) GetCompanyOverview(c echo.Context) error {
	ticker, err := h.bindTicker(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	overview, err := h.service.CompanyService.GetOverview(c.Request().Context(), ticker)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTicker) {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		}
		// Exhaustion means no provider knows the symbol; anything else is an
		// internal failure and must not masquerade as a missing company.
		if errors.Is(err, repository.ErrAllProvidersFailed) {
			return c.JSON(http.StatusNotFound,
				dto.NewBaseResponse(http.StatusNotFound, "no company data for "+ticker, nil))
		}
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", overview))
}

func (h *HttpAPIHandler) GetStockBehavior(c echo.Context) error {
	ticker, err := h.bindTicker(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	var (
		behavior *dto.StockBehaviorResponse
		svcErr   error
	)
	if c.QueryParam("force") == "true" {
		behavior, svcErr = h.service.BehaviorService.Recompute(c.Request().Context(), ticker)
	} else {
		behavior, svcErr = h.service.BehaviorService.Analyze(c.Request().Context(), ticker)
	}
	if svcErr != nil {
		if errors.Is(svcErr, service.ErrEmptyTicker) {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(svcErr.Error()))
		}
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, svcErr.Error(), nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", behavior))
}

func (h *HttpAPIHandler) bindTicker(c echo.Context) (string, error) {
	param := tickerParam{Ticker: strings.ToUpper(strings.TrimSpace(c.Param("ticker")))}
	if err := h.validator.Struct(&param); err != nil {
		return "", errors.New("ticker must be a non-empty alphanumeric symbol")
	}
	return param.Ticker, nil
}
