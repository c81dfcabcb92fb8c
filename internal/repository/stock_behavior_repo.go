package repository

import (
	"context"
	"errors"

	"signalist/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockBehaviorRepository interface {
	GetByTicker(ctx context.Context, ticker string) (*model.StockBehavior, error)
	Upsert(ctx context.Context, behavior *model.StockBehavior) error
}

type stockBehaviorRepository struct {
	db *gorm.DB
}

func NewStockBehaviorRepository(db *gorm.DB) StockBehaviorRepository {
	return &stockBehaviorRepository{db: db}
}

// GetByTicker returns nil without error when no record exists.
func (r *stockBehaviorRepository) GetByTicker(ctx context.Context, ticker string) (*model.StockBehavior, error) {
	var behavior model.StockBehavior
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&behavior).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &behavior, nil
}

func (r *stockBehaviorRepository) Upsert(ctx context.Context, behavior *model.StockBehavior) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"volatility_type", "trend_nature", "suitability", "confidence_score", "updated_at"}),
	}).Create(behavior).Error
}
