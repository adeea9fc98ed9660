package mongodb

import (
	"context"
	"time"

	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userRepository implements repository.UserRepository on a MongoDB collection.
type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(collection *mongo.Collection) repository.UserRepository {
	return &userRepository{collection: collection}
}

var withoutHistory = bson.D{{Key: fieldHistory, Value: 0}}

// FindOrCreate upserts on googleId. Two concurrent upserts can both miss and race on
// the unique index; the loser reads the winner's document.
func (repo *userRepository) FindOrCreate(ctx context.Context, googleID, username string) (*entity.User, error) {
	user := entity.NewUser(googleID, username)
	filter := bson.D{{Key: fieldGoogleID, Value: googleID}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: fieldID, Value: user.ID.String()},
		{Key: fieldUsername, Value: user.Username},
		{Key: fieldHistory, Value: bson.A{}},
		{Key: fieldCreatedAt, Value: user.CreatedAt},
		{Key: fieldUpdatedAt, Value: user.UpdatedAt},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(withoutHistory)

	var doc userDocument
	err := repo.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		err = repo.collection.FindOne(ctx, filter, options.FindOne().SetProjection(withoutHistory)).Decode(&doc)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find or create user")
	}

	return doc.toDomain()
}

// FindByID retrieves a user without its history.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var doc userDocument
	err := repo.collection.FindOne(ctx,
		bson.D{{Key: fieldID, Value: id.String()}},
		options.FindOne().SetProjection(withoutHistory),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return doc.toDomain()
}

// AppendHistory pushes one entry onto the embedded history array.
func (repo *userRepository) AppendHistory(ctx context.Context, userID uuid.UUID, entry entity.HistoryEntry) error {
	item, err := historyToBSON(entry)
	if err != nil {
		return err
	}

	result, err := repo.collection.UpdateOne(ctx,
		bson.D{{Key: fieldID, Value: userID.String()}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: fieldHistory, Value: item}}},
			{Key: "$set", Value: bson.D{{Key: fieldUpdatedAt, Value: time.Now().UTC()}}},
		},
	)
	if err != nil {
		return errors.Wrap(err, "failed to append history")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ListHistory returns the embedded history array in push order.
func (repo *userRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]entity.HistoryEntry, error) {
	var doc userDocument
	err := repo.collection.FindOne(ctx,
		bson.D{{Key: fieldID, Value: userID.String()}},
		options.FindOne().SetProjection(bson.D{{Key: fieldHistory, Value: 1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []entity.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history")
	}

	return historyToDomain(doc.History)
}
