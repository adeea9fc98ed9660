package usecase

import (
	"context"

	"genrelens/internal/domain/entity"

	"github.com/google/uuid"
)

// Profile summarises a signed-in user.
type Profile struct {
	ID           uuid.UUID
	GoogleID     string
	Username     string
	HistoryCount int
}

// HistoryUsecase defines read access to a user's classification history.
type HistoryUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	ListHistory(ctx context.Context, userID uuid.UUID) ([]entity.HistoryEntry, error)
}
