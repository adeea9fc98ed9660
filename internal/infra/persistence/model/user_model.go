// Package model holds the GORM persistence models and their mapping to domain entities.
package model

import (
	"time"

	"genrelens/internal/domain/entity"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are generated by the application (UUIDv7).
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoogleID  string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	History []HistoryModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// FromUserDomain maps a domain user onto a row. History is stored separately.
func FromUserDomain(user *entity.User) *UserModel {
	return &UserModel{
		ID:        user.ID,
		GoogleID:  user.GoogleID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToDomain maps the row and any loaded history back to a domain user.
func (m *UserModel) ToDomain() *entity.User {
	history := make([]entity.HistoryEntry, 0, len(m.History))
	for i := range m.History {
		history = append(history, m.History[i].ToDomain())
	}

	return &entity.User{
		ID:        m.ID,
		GoogleID:  m.GoogleID,
		Username:  m.Username,
		History:   history,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
