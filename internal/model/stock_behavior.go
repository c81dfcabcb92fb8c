package model

import "time"

type VolatilityType string

const (
	VolatilityLow     VolatilityType = "LOW"
	VolatilityMedium  VolatilityType = "MEDIUM"
	VolatilityHigh    VolatilityType = "HIGH"
	VolatilityUnknown VolatilityType = "UNKNOWN"
)

type TrendNature string

const (
	TrendUp      TrendNature = "UPTREND"
	TrendDown    TrendNature = "DOWNTREND"
	TrendUnknown TrendNature = "UNKNOWN"
)

type Suitability string

const (
	SuitabilityLongTerm         Suitability = "LONG_TERM_INVESTOR"
	SuitabilityShortTerm        Suitability = "SHORT_TERM_TRADER"
	SuitabilityInsufficientData Suitability = "INSUFFICIENT_DATA"
)

// StockBehavior is the behavioral classification derived once from a ticker's
// price series. A persisted row is treated as terminal and is never
// recomputed unless a caller explicitly forces it.
type StockBehavior struct {
	ID              uint           `gorm:"primarykey" json:"-"`
	Ticker          string         `gorm:"not null;uniqueIndex" json:"ticker"`
	VolatilityType  VolatilityType `gorm:"not null" json:"volatility_type"`
	TrendNature     TrendNature    `gorm:"not null" json:"trend_nature"`
	Suitability     Suitability    `gorm:"not null" json:"suitability"`
	ConfidenceScore int            `gorm:"not null" json:"confidence_score"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"-"`
}

func (StockBehavior) TableName() string {
	return "stock_behaviors"
}

// Insufficient reports whether this is the sentinel result produced for an
// empty price series. Sentinel results are returned to callers but never
// persisted, so a later call with real data can supersede them.
func (b *StockBehavior) Insufficient() bool {
	return b.Suitability == SuitabilityInsufficientData
}
