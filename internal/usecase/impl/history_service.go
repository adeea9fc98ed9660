package impl

import (
	"context"
	"log/slog"

	deliverycontext "genrelens/internal/delivery/context"
	"genrelens/internal/domain/entity"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/domain/repository"
	"genrelens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// historyService implements the HistoryUsecase interface.
type historyService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewHistoryService is the constructor for historyService.
func NewHistoryService(users repository.UserRepository, logger *slog.Logger) usecase.HistoryUsecase {
	return &historyService{
		users:  users,
		logger: logger,
	}
}

func (srv *historyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *historyService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.Profile, error) {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := srv.users.ListHistory(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list history")
	}

	return &usecase.Profile{
		ID:           user.ID,
		GoogleID:     user.GoogleID,
		Username:     user.Username,
		HistoryCount: len(history),
	}, nil
}

func (srv *historyService) ListHistory(ctx context.Context, userID uuid.UUID) ([]entity.HistoryEntry, error) {
	if _, err := srv.findUser(ctx, userID); err != nil {
		return nil, err
	}

	history, err := srv.users.ListHistory(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list history")
	}

	srv.log(ctx).Debug("Listed history", slog.Int("entries", len(history)))

	return history, nil
}

func (srv *historyService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return user, nil
}
