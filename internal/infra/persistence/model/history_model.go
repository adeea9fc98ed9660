package model

import (
	"time"

	"genrelens/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HistoryModel mirrors the 'history_entries' table. The auto-increment ID is the append order.
type HistoryModel struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Filename  string         `gorm:"type:varchar(255);not null"`
	Result    datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (HistoryModel) TableName() string {
	return "history_entries"
}

// FromHistoryDomain maps a history entry for the given user onto a row.
func FromHistoryDomain(userID uuid.UUID, entry entity.HistoryEntry) *HistoryModel {
	return &HistoryModel{
		UserID:    userID,
		Filename:  entry.Filename,
		Result:    datatypes.JSON(entry.Result),
		CreatedAt: entry.Timestamp,
	}
}

// ToDomain maps the row back to a history entry.
func (m *HistoryModel) ToDomain() entity.HistoryEntry {
	return entity.HistoryEntry{
		Filename:  m.Filename,
		Result:    entity.Verdict(m.Result),
		Timestamp: m.CreatedAt,
	}
}
