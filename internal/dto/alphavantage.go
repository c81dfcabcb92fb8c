package dto

// AlphaVantageDailyResponse is the TIME_SERIES_DAILY payload. The time series
// maps "YYYY-MM-DD" to per-day fields keyed by numbered names; rate-limit
// responses come back as 200 with a "Note" body instead.
type AlphaVantageDailyResponse struct {
	Note        string                          `json:"Note"`
	Information string                          `json:"Information"`
	TimeSeries  map[string]AlphaVantageDailyBar `json:"Time Series (Daily)"`
}

type AlphaVantageDailyBar struct {
	Close string `json:"4. close"`
}

// AlphaVantageOverviewResponse is the OVERVIEW payload. Unknown symbols
// produce an empty object.
type AlphaVantageOverviewResponse struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	Description          string `json:"Description"`
	Note                 string `json:"Note"`
}
