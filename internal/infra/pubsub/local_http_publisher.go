package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "genrelens/internal/delivery/context"
	"genrelens/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localSubscription  = "projects/local/subscriptions/classification-sub"
	localMaxAttempts   = 3
	localRetryDelay    = 200 * time.Millisecond
	localClientTimeout = 10 * time.Second
)

// localHTTPPublisher posts Pub/Sub push envelopes straight to a worker, standing in for
// Google Pub/Sub during development. Like a push subscription it retries 5xx answers.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	retryDelay time.Duration
	logger     *slog.Logger
}

// PubSubPushMessage is the body Google Pub/Sub sends to push endpoints.
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localClientTimeout},
		retryDelay: localRetryDelay,
		logger:     logger,
	}
}

// PublishClassificationEvent wraps the event in a push envelope and delivers it.
func (p *localHTTPPublisher) PublishClassificationEvent(ctx context.Context, event *service.ClassificationEvent) error {
	data, err := encodeEvent(event)
	if err != nil {
		return err
	}

	pushMsg := PubSubPushMessage{Subscription: localSubscription}
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(data)
	pushMsg.Message.MessageID = uuid.New().String()
	pushMsg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	pushMsg.Message.Attributes = eventAttributes(event)

	body, err := json.Marshal(pushMsg)
	if err != nil {
		return errors.WithStack(err)
	}

	for attempt := 1; ; attempt++ {
		retryable, err := p.push(ctx, body, event.RequestID)
		if err == nil {
			p.logger.Debug("[LocalPubSub] Classification event delivered",
				slog.String("message_id", pushMsg.Message.MessageID),
				slog.Int("attempt", attempt),
			)

			return nil
		}
		if !retryable || attempt == localMaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(time.Duration(attempt) * p.retryDelay):
		}
	}
}

// push sends one delivery attempt and reports whether a failure is worth retrying.
func (p *localHTTPPublisher) push(ctx context.Context, body []byte, requestID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, errors.Wrap(err, "push endpoint unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode >= http.StatusInternalServerError,
			errors.Errorf("push endpoint returned non-success status: %d", resp.StatusCode)
	}

	return false, nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	return nil
}
