package model

import "time"

// PricePoint is one daily close for a ticker. Rows are write-once: at most
// one row per (ticker, date), never mutated after insert.
type PricePoint struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Ticker    string    `gorm:"not null;uniqueIndex:idx_price_points_ticker_date" json:"ticker"`
	Date      string    `gorm:"not null;uniqueIndex:idx_price_points_ticker_date" json:"date"`
	Close     float64   `gorm:"not null" json:"close"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (PricePoint) TableName() string {
	return "price_points"
}
