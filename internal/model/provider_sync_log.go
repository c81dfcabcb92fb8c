package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProviderSyncLog is a best-effort audit row written after each successful
// upstream resolution. It records which provider served a ticker and the
// requested window, so provider traffic can be traced per ticker.
type ProviderSyncLog struct {
	ID         uint           `gorm:"primarykey"`
	Ticker     string         `gorm:"not null;index"`
	Provider   string         `gorm:"not null"`
	PointCount int            `gorm:"not null"`
	// WINDOW is reserved in PostgreSQL, so the column carries its own name.
	Window     datatypes.JSON `gorm:"column:sync_window;type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (ProviderSyncLog) TableName() string {
	return "provider_sync_logs"
}

// SyncWindow is the payload serialized into ProviderSyncLog.Window.
type SyncWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
	Days int    `json:"days"`
}
