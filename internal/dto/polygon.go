package dto

// PolygonAggsResponse is the v2 aggregates payload for daily bars.
type PolygonAggsResponse struct {
	Status       string             `json:"status"`
	ResultsCount int                `json:"resultsCount"`
	Results      []PolygonAggResult `json:"results"`
}

type PolygonAggResult struct {
	Timestamp int64   `json:"t"` // epoch millis of the bar open
	Close     float64 `json:"c"`
}

// PolygonTickerResponse is the v3 reference ticker details payload.
type PolygonTickerResponse struct {
	Status  string               `json:"status"`
	Results *PolygonTickerDetail `json:"results"`
}

type PolygonTickerDetail struct {
	Ticker         string   `json:"ticker"`
	Name           string   `json:"name"`
	SicDescription string   `json:"sic_description"`
	MarketCap      *float64 `json:"market_cap"`
	Description    string   `json:"description"`
}
