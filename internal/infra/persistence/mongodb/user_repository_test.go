package mongodb

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var storedAt = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func newMockStore(t *testing.T) *mtest.T {
	t.Helper()

	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func userDoc(id uuid.UUID, googleID, username string) bson.D {
	return bson.D{
		{Key: fieldID, Value: id.String()},
		{Key: fieldGoogleID, Value: googleID},
		{Key: fieldUsername, Value: username},
		{Key: fieldCreatedAt, Value: storedAt},
		{Key: fieldUpdatedAt, Value: storedAt},
	}
}

func TestUserRepository_FindOrCreate(t *testing.T) {
	mt := newMockStore(t)

	mt.Run("upserts on googleId", func(mt *mtest.T) {
		id := uuid.New()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: userDoc(id, "google-1", "Ada")},
		))

		user, err := NewUserRepository(mt.Coll).FindOrCreate(context.Background(), "google-1", "Ada")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "google-1", user.GoogleID)
		assert.Equal(mt, "Ada", user.Username)
		assert.Empty(mt, user.History)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		cmd := started.Command
		assert.Equal(mt, "google-1", cmd.Lookup("query", fieldGoogleID).StringValue())
		assert.True(mt, cmd.Lookup("upsert").Boolean())
		assert.True(mt, cmd.Lookup("new").Boolean())
		assert.Equal(mt, "Ada", cmd.Lookup("update", "$setOnInsert", fieldUsername).StringValue())
		assert.Equal(mt, int32(0), cmd.Lookup("fields", fieldHistory).Int32())
	})

	mt.Run("duplicate key reads the winner", func(mt *mtest.T) {
		winner := uuid.New()
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11000,
				Message: "E11000 duplicate key error collection: genrelens.users index: uniq_google_id",
				Name:    "DuplicateKey",
			}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, userDoc(winner, "google-1", "Ada")),
		)

		user, err := NewUserRepository(mt.Coll).FindOrCreate(context.Background(), "google-1", "Ada")
		require.NoError(mt, err)
		assert.Equal(mt, winner, user.ID)

		assert.Equal(mt, "findAndModify", mt.GetStartedEvent().CommandName)
		find := mt.GetStartedEvent()
		require.NotNil(mt, find)
		assert.Equal(mt, "find", find.CommandName)
		assert.Equal(mt, "google-1", find.Command.Lookup("filter", fieldGoogleID).StringValue())
	})

	mt.Run("other server errors are returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "not authorized",
			Name:    "Unauthorized",
		}))

		user, err := NewUserRepository(mt.Coll).FindOrCreate(context.Background(), "google-1", "Ada")
		assert.Nil(mt, user)
		assert.ErrorContains(mt, err, "failed to find or create user")
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	mt := newMockStore(t)

	mt.Run("found", func(mt *mtest.T) {
		id := uuid.New()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, userDoc(id, "google-2", "Lin")))

		user, err := NewUserRepository(mt.Coll).FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, "Lin", user.Username)
		assert.Equal(mt, storedAt, user.CreatedAt.UTC())
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		user, err := NewUserRepository(mt.Coll).FindByID(context.Background(), uuid.New())
		assert.Nil(mt, user)
		assert.ErrorIs(mt, err, repository.ErrUserNotFound)
	})
}

func TestUserRepository_AppendHistory(t *testing.T) {
	mt := newMockStore(t)
	entry := entity.HistoryEntry{
		Filename:  "solo.mp3",
		Result:    json.RawMessage(`{"genre":"jazz","confidence":0.91}`),
		Timestamp: storedAt,
	}

	mt.Run("pushes onto the user's history", func(mt *mtest.T) {
		userID := uuid.New()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, NewUserRepository(mt.Coll).AppendHistory(context.Background(), userID, entry))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)

		update := started.Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(mt, userID.String(), update.Lookup("q", fieldID).StringValue())
		pushed := update.Lookup("u", "$push", fieldHistory).Document()
		assert.Equal(mt, "solo.mp3", pushed.Lookup("filename").StringValue())
		assert.Equal(mt, "jazz", pushed.Lookup("result", "genre").StringValue())
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewUserRepository(mt.Coll).AppendHistory(context.Background(), uuid.New(), entry)
		assert.ErrorIs(mt, err, repository.ErrUserNotFound)
	})

	mt.Run("invalid verdict never reaches the server", func(mt *mtest.T) {
		bad := entry
		bad.Result = json.RawMessage(`{"genre":`)

		err := NewUserRepository(mt.Coll).AppendHistory(context.Background(), uuid.New(), bad)
		assert.Error(mt, err)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestUserRepository_ListHistory(t *testing.T) {
	mt := newMockStore(t)

	mt.Run("push order", func(mt *mtest.T) {
		userID := uuid.New()
		doc := bson.D{
			{Key: fieldID, Value: userID.String()},
			{Key: fieldHistory, Value: bson.A{
				bson.D{
					{Key: "filename", Value: "first.wav"},
					{Key: "result", Value: bson.D{{Key: "genre", Value: "rock"}}},
					{Key: "timestamp", Value: storedAt},
				},
				bson.D{
					{Key: "filename", Value: "second.wav"},
					{Key: "result", Value: bson.A{"pop", "dance"}},
					{Key: "timestamp", Value: storedAt.Add(time.Minute)},
				},
			}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, doc))

		history, err := NewUserRepository(mt.Coll).ListHistory(context.Background(), userID)
		require.NoError(mt, err)
		require.Len(mt, history, 2)
		assert.Equal(mt, "first.wav", history[0].Filename)
		assert.JSONEq(mt, `{"genre":"rock"}`, string(history[0].Result))
		assert.Equal(mt, "second.wav", history[1].Filename)
		assert.JSONEq(mt, `["pop","dance"]`, string(history[1].Result))
		assert.True(mt, history[0].Timestamp.Before(history[1].Timestamp))
	})

	mt.Run("unknown user has no history", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		history, err := NewUserRepository(mt.Coll).ListHistory(context.Background(), uuid.New())
		require.NoError(mt, err)
		assert.NotNil(mt, history)
		assert.Empty(mt, history)
	})
}
