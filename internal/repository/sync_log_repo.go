package repository

import (
	"context"
	"encoding/json"

	"signalist/internal/model"

	"gorm.io/gorm"
)

type ProviderSyncLogRepository interface {
	Create(ctx context.Context, ticker, provider string, pointCount int, window model.SyncWindow) error
}

type providerSyncLogRepository struct {
	db *gorm.DB
}

func NewProviderSyncLogRepository(db *gorm.DB) ProviderSyncLogRepository {
	return &providerSyncLogRepository{db: db}
}

func (r *providerSyncLogRepository) Create(ctx context.Context, ticker, provider string, pointCount int, window model.SyncWindow) error {
	payload, err := json.Marshal(window)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&model.ProviderSyncLog{
		Ticker:     ticker,
		Provider:   provider,
		PointCount: pointCount,
		Window:     payload,
	}).Error
}
