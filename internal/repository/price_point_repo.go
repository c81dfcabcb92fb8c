package repository

import (
	"context"

	"signalist/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricePointRepository interface {
	GetByTicker(ctx context.Context, ticker string) ([]model.PricePoint, error)
	UpsertBatch(ctx context.Context, points []model.PricePoint) error
}

type pricePointRepository struct {
	db *gorm.DB
}

func NewPricePointRepository(db *gorm.DB) PricePointRepository {
	return &pricePointRepository{db: db}
}

func (r *pricePointRepository) GetByTicker(ctx context.Context, ticker string) ([]model.PricePoint, error) {
	var points []model.PricePoint
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("date ASC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// UpsertBatch writes a resolved window as one unit: either every point of
// the batch becomes visible or none does. Conflicting (ticker, date) rows
// are left untouched, keeping price points write-once.
func (r *pricePointRepository) UpsertBatch(ctx context.Context, points []model.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
			DoNothing: true,
		}).CreateInBatches(points, 500).Error
	})
}
