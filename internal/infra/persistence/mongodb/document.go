package mongodb

import (
	"encoding/json"
	"time"

	"genrelens/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	fieldID        = "_id"
	fieldGoogleID  = "googleId"
	fieldUsername  = "username"
	fieldHistory   = "history"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

type userDocument struct {
	ID        string            `bson:"_id"`
	GoogleID  string            `bson:"googleId"`
	Username  string            `bson:"username"`
	History   []historyDocument `bson:"history,omitempty"`
	CreatedAt time.Time         `bson:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

type historyDocument struct {
	Filename  string        `bson:"filename"`
	Result    bson.RawValue `bson:"result"`
	Timestamp time.Time     `bson:"timestamp"`
}

func (d *userDocument) toDomain() (*entity.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "user document has invalid id %q", d.ID)
	}

	history, err := historyToDomain(d.History)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		ID:        id,
		GoogleID:  d.GoogleID,
		Username:  d.Username,
		History:   history,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func historyToDomain(docs []historyDocument) ([]entity.HistoryEntry, error) {
	history := make([]entity.HistoryEntry, 0, len(docs))
	for _, doc := range docs {
		verdict, err := verdictFromBSON(doc.Result)
		if err != nil {
			return nil, err
		}
		history = append(history, entity.HistoryEntry{
			Filename:  doc.Filename,
			Result:    verdict,
			Timestamp: doc.Timestamp,
		})
	}

	return history, nil
}

// historyToBSON builds the document pushed onto a user's history array.
func historyToBSON(entry entity.HistoryEntry) (bson.D, error) {
	result, err := verdictToBSON(entry.Result)
	if err != nil {
		return nil, err
	}

	return bson.D{
		{Key: "filename", Value: entry.Filename},
		{Key: "result", Value: result},
		{Key: "timestamp", Value: entry.Timestamp},
	}, nil
}

// verdictToBSON stores the verdict as native BSON so it stays queryable. Objects keep
// their key order; the JSON is wrapped so arrays and scalars decode too.
func verdictToBSON(verdict entity.Verdict) (any, error) {
	wrapped := make([]byte, 0, len(verdict)+6)
	wrapped = append(wrapped, `{"v":`...)
	wrapped = append(wrapped, verdict...)
	wrapped = append(wrapped, '}')

	var doc bson.D
	if err := bson.UnmarshalExtJSON(wrapped, false, &doc); err != nil {
		return nil, errors.Wrap(err, "verdict is not valid JSON")
	}
	if len(doc) != 1 {
		return nil, errors.New("verdict is not valid JSON")
	}

	return doc[0].Value, nil
}

func verdictFromBSON(value bson.RawValue) (entity.Verdict, error) {
	out, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: value}}, false, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode stored verdict")
	}

	var wrapper struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(out, &wrapper); err != nil {
		return nil, errors.Wrap(err, "failed to decode stored verdict")
	}

	return entity.Verdict(wrapper.V), nil
}
