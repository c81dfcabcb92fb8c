package dto

import "signalist/internal/model"

// CompanyProfile is the normalized profile shape returned by provider
// adapters. A nil field means the provider does not know the value; an empty
// string is a real (empty) value and is never treated as absent.
type CompanyProfile struct {
	Symbol      string
	Name        *string
	Sector      *string
	Industry    *string
	MarketCap   *string
	Description *string
}

// MergeFrom fills every absent field of p with the other profile's value.
// Fields already populated are never overwritten, so an earlier (more
// trusted) provider always wins per field.
func (p *CompanyProfile) MergeFrom(other *CompanyProfile) {
	if other == nil {
		return
	}
	if p.Name == nil {
		p.Name = other.Name
	}
	if p.Sector == nil {
		p.Sector = other.Sector
	}
	if p.Industry == nil {
		p.Industry = other.Industry
	}
	if p.MarketCap == nil {
		p.MarketCap = other.MarketCap
	}
	if p.Description == nil {
		p.Description = other.Description
	}
}

// Complete reports whether no field is absent.
func (p *CompanyProfile) Complete() bool {
	return p.Name != nil && p.Sector != nil && p.Industry != nil &&
		p.MarketCap != nil && p.Description != nil
}

func (p *CompanyProfile) ToModel() *model.CompanyOverview {
	return &model.CompanyOverview{
		Symbol:      p.Symbol,
		Name:        p.Name,
		Sector:      p.Sector,
		Industry:    p.Industry,
		MarketCap:   p.MarketCap,
		Description: p.Description,
	}
}
