package model

import "time"

// CompanyOverview is the merged company profile for a symbol. Nullable fields
// use NULL as the explicit "not yet known" marker so the merge step can tell
// an absent value apart from a legitimately empty string.
type CompanyOverview struct {
	Symbol      string    `gorm:"primarykey" json:"symbol"`
	Name        *string   `json:"name"`
	Sector      *string   `json:"sector"`
	Industry    *string   `json:"industry"`
	MarketCap   *string   `json:"market_cap"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (CompanyOverview) TableName() string {
	return "company_overviews"
}

// Complete reports whether every profile field is populated, meaning a
// secondary provider has nothing left to contribute.
func (c *CompanyOverview) Complete() bool {
	return c.Name != nil && c.Sector != nil && c.Industry != nil &&
		c.MarketCap != nil && c.Description != nil
}
