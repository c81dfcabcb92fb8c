// Package analyzer derives a behavioral classification from a resolved price
// series. It is pure computation: no I/O, no persistence.
package analyzer

import (
	"math"

	"signalist/internal/model"
)

// Volatility class boundaries, in absolute close-price units. These are
// domain-tuned constants, not derived from returns.
const (
	lowVolatilityMax    = 1.5
	mediumVolatilityMax = 3.0
	maxConfidenceScore  = 95
)

// Classify computes volatility class, trend direction, suitability and a
// confidence score for an ordered price series. An empty series yields the
// insufficient-data sentinel, which callers must not persist as terminal.
//
// Two boundary behaviors are intentional and relied upon by callers: a zero
// price delta classifies as DOWNTREND (the uptrend test is strictly greater
// than zero), and the confidence score is only capped from above, so a very
// volatile series can score negative.
func Classify(ticker string, prices []model.PricePoint) *model.StockBehavior {
	if len(prices) == 0 {
		return &model.StockBehavior{
			Ticker:          ticker,
			VolatilityType:  model.VolatilityUnknown,
			TrendNature:     model.TrendUnknown,
			Suitability:     model.SuitabilityInsufficientData,
			ConfidenceScore: 0,
		}
	}

	volatility := populationStdDev(prices)
	trend := prices[len(prices)-1].Close - prices[0].Close

	volatilityType := model.VolatilityHigh
	switch {
	case volatility < lowVolatilityMax:
		volatilityType = model.VolatilityLow
	case volatility < mediumVolatilityMax:
		volatilityType = model.VolatilityMedium
	}

	trendNature := model.TrendDown
	if trend > 0 {
		trendNature = model.TrendUp
	}

	suitability := model.SuitabilityShortTerm
	if volatilityType == model.VolatilityLow {
		suitability = model.SuitabilityLongTerm
	}

	confidence := int(math.Round(100 - volatility*10))
	if confidence > maxConfidenceScore {
		confidence = maxConfidenceScore
	}

	return &model.StockBehavior{
		Ticker:          ticker,
		VolatilityType:  volatilityType,
		TrendNature:     trendNature,
		Suitability:     suitability,
		ConfidenceScore: confidence,
	}
}

// populationStdDev is the population standard deviation of closing prices.
// Not annualized and not percentage-normalized.
func populationStdDev(prices []model.PricePoint) float64 {
	var sum float64
	for _, p := range prices {
		sum += p.Close
	}
	mean := sum / float64(len(prices))

	var sqSum float64
	for _, p := range prices {
		diff := p.Close - mean
		sqSum += diff * diff
	}

	return math.Sqrt(sqSum / float64(len(prices)))
}
