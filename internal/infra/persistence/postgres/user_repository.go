// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/repository"
	"genrelens/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindOrCreate inserts the user unless the Google ID is already taken, then reads the
// surviving row back. Concurrent sign-ins for one Google ID all land on the same row.
func (repo *userRepository) FindOrCreate(ctx context.Context, googleID, username string) (*entity.User, error) {
	candidate := model.FromUserDomain(entity.NewUser(googleID, username))

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "google_id"}},
			DoNothing: true,
		}).
		Create(candidate).Error
	if err != nil && !isUniqueConstraintViolation(err) {
		return nil, errors.Wrap(err, "failed to create user")
	}

	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("google_id = ?", googleID).First(&userM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load user after upsert")
	}

	return userM.ToDomain(), nil
}

// FindByID retrieves a single user by their unique ID. History is not loaded.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return userM.ToDomain(), nil
}

// AppendHistory inserts one history row inside a transaction that first checks the user exists.
func (repo *userRepository) AppendHistory(ctx context.Context, userID uuid.UUID, entry entity.HistoryEntry) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.UserModel{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check user")
		}
		if count == 0 {
			return repository.ErrUserNotFound
		}

		if err := tx.Create(model.FromHistoryDomain(userID, entry)).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to append history")
		}

		return tx.Model(&model.UserModel{}).Where("id = ?", userID).
			Update("updated_at", entry.Timestamp).Error
	})
}

// ListHistory returns the user's history in the order it was appended.
func (repo *userRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]entity.HistoryEntry, error) {
	var rows []model.HistoryModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list history")
	}

	history := make([]entity.HistoryEntry, 0, len(rows))
	for i := range rows {
		history = append(history, rows[i].ToDomain())
	}

	return history, nil
}
