package service

import (
	"context"
	"encoding/json"
	"time"
)

// ClassificationEvent is emitted after a verdict has been returned to a caller.
type ClassificationEvent struct {
	RequestID     string          `json:"request_id,omitempty"` // For distributed tracing
	UserID        string          `json:"user_id,omitempty"`    // Empty for anonymous callers
	Filename      string          `json:"filename"`
	Verdict       json.RawMessage `json:"verdict"`
	HistoryStatus string          `json:"history_status"`
	ClassifiedAt  time.Time       `json:"classified_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishClassificationEvent publishes a classification event for downstream consumers
	PublishClassificationEvent(ctx context.Context, event *ClassificationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
