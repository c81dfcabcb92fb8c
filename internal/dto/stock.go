package dto

import "signalist/internal/model"

// StockHistoryResponse echoes the requested ticker alongside its daily
// closes. An empty Prices slice means "temporarily unavailable", not
// "confirmed zero data".
type StockHistoryResponse struct {
	Ticker string             `json:"ticker"`
	Prices []model.PricePoint `json:"prices"`
}

type StockBehaviorResponse struct {
	Ticker          string               `json:"ticker"`
	VolatilityType  model.VolatilityType `json:"volatility_type"`
	TrendNature     model.TrendNature    `json:"trend_nature"`
	Suitability     model.Suitability    `json:"suitability"`
	ConfidenceScore int                  `json:"confidence_score"`
}

func NewStockBehaviorResponse(b *model.StockBehavior) *StockBehaviorResponse {
	return &StockBehaviorResponse{
		Ticker:          b.Ticker,
		VolatilityType:  b.VolatilityType,
		TrendNature:     b.TrendNature,
		Suitability:     b.Suitability,
		ConfidenceScore: b.ConfidenceScore,
	}
}
