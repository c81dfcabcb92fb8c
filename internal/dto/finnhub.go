package dto

// FinnhubCandleResponse is the stock/candle payload. Status "ok" with
// parallel t/c arrays; "no_data" when the symbol has no candles.
type FinnhubCandleResponse struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Closes     []float64 `json:"c"`
}

// FinnhubProfileResponse is the stock/profile2 payload. Finnhub returns an
// empty object for unknown symbols.
type FinnhubProfileResponse struct {
	Ticker               string   `json:"ticker"`
	Name                 string   `json:"name"`
	FinnhubIndustry      string   `json:"finnhubIndustry"`
	MarketCapitalization *float64 `json:"marketCapitalization"`
}
