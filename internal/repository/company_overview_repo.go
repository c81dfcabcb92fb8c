package repository

import (
	"context"
	"errors"

	"signalist/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyOverviewRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (*model.CompanyOverview, error)
	Upsert(ctx context.Context, overview *model.CompanyOverview) error
}

type companyOverviewRepository struct {
	db *gorm.DB
}

func NewCompanyOverviewRepository(db *gorm.DB) CompanyOverviewRepository {
	return &companyOverviewRepository{db: db}
}

// GetBySymbol returns nil without error when no record exists.
func (r *companyOverviewRepository) GetBySymbol(ctx context.Context, symbol string) (*model.CompanyOverview, error) {
	var overview model.CompanyOverview
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&overview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &overview, nil
}

func (r *companyOverviewRepository) Upsert(ctx context.Context, overview *model.CompanyOverview) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sector", "industry", "market_cap", "description", "updated_at"}),
	}).Create(overview).Error
}
