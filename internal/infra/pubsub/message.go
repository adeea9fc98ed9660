package pubsub

import (
	"encoding/json"

	"genrelens/internal/domain/service"

	"github.com/pkg/errors"
)

const eventTypeClassificationCompleted = "classification.completed"

// encodeEvent serialises an event after checking the fields consumers rely on.
func encodeEvent(event *service.ClassificationEvent) ([]byte, error) {
	if event == nil {
		return nil, errors.New("classification event is nil")
	}
	if event.HistoryStatus == "" {
		return nil, errors.New("classification event has no history status")
	}
	if !json.Valid(event.Verdict) {
		return nil, errors.New("classification event verdict is not valid JSON")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// eventAttributes builds message attributes subscribers can filter on.
func eventAttributes(event *service.ClassificationEvent) map[string]string {
	attributes := map[string]string{
		"event_type":     eventTypeClassificationCompleted,
		"history_status": event.HistoryStatus,
	}
	if event.UserID != "" {
		attributes["user_id"] = event.UserID
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// orderingKey keeps one user's events in history order. Guest events are unordered.
func orderingKey(event *service.ClassificationEvent) string {
	return event.UserID
}
