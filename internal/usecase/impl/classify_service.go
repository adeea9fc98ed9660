// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "genrelens/internal/delivery/context"
	"genrelens/internal/domain/constants"
	"genrelens/internal/domain/entity"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/domain/repository"
	"genrelens/internal/domain/service"
	"genrelens/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPublishTimeout = 10 * time.Second

// pipelineState names the steps a classification request moves through.
type pipelineState string

const (
	stateReceived    pipelineState = "received"
	stateClassifying pipelineState = "classifying"
	stateRecording   pipelineState = "recording"
	stateDone        pipelineState = "done"
	stateFailed      pipelineState = "failed"
)

// ClassifyServiceParams holds dependencies for the classification pipeline, injected by Fx
type ClassifyServiceParams struct {
	fx.In

	Receiver   service.UploadReceiver
	Classifier service.Classifier
	Tokens     service.TokenService
	Users      repository.UserRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// classifyService implements the ClassifyUsecase interface.
type classifyService struct {
	receiver   service.UploadReceiver
	classifier service.Classifier
	tokens     service.TokenService
	users      repository.UserRepository
	publisher  service.EventPublisher
	logger     *slog.Logger

	publishTimeout time.Duration
	spawn          func(func())
}

// NewClassifyService is the constructor for classifyService.
func NewClassifyService(params ClassifyServiceParams) usecase.ClassifyUsecase {
	return &classifyService{
		receiver:       params.Receiver,
		classifier:     params.Classifier,
		tokens:         params.Tokens,
		users:          params.Users,
		publisher:      params.Publisher,
		logger:         params.Logger,
		publishTimeout: defaultPublishTimeout,
		spawn:          func(fn func()) { go fn() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *classifyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *classifyService) enter(ctx context.Context, state pipelineState, attrs ...any) {
	srv.log(ctx).Debug("Classification pipeline", append([]any{slog.String("state", string(state))}, attrs...)...)
}

// Classify receives the upload, relays it to the classification service and records the
// verdict against the caller when the bearer token is valid. Once the upload has been
// received it is released exactly once, whatever happens afterwards.
func (srv *classifyService) Classify(ctx context.Context, req *usecase.ClassifyRequest) (*usecase.ClassifyResult, error) {
	upload, err := srv.receiver.Receive(ctx, req.ContentType, req.Body)
	if err != nil {
		srv.enter(ctx, stateFailed, slog.String("reason", "bad upload"), slog.Any("error", err))

		return nil, err
	}
	defer srv.receiver.Release(context.WithoutCancel(ctx), upload)

	srv.enter(ctx, stateReceived,
		slog.String("filename", upload.Filename),
		slog.Int64("size", upload.Size),
	)

	srv.enter(ctx, stateClassifying)
	verdict, err := srv.classifier.Classify(ctx, upload)
	if err != nil {
		attrs := []any{slog.String("filename", upload.Filename), slog.Any("error", err)}
		var fault *service.ServiceFault
		if errors.As(err, &fault) {
			attrs = append(attrs, slog.Int("upstream_status", fault.StatusCode))
		}
		srv.log(ctx).Error("Classification service fault", attrs...)
		srv.enter(ctx, stateFailed, slog.String("reason", "classification error"))

		return nil, domainerrors.ErrClassificationFailed.WithDetails(err.Error())
	}

	srv.enter(ctx, stateRecording)
	status, userID := srv.record(ctx, req.BearerToken, upload, verdict)

	srv.enter(ctx, stateDone, slog.String("history_status", status))
	srv.publish(ctx, &service.ClassificationEvent{
		RequestID:     upload.RequestID,
		UserID:        userID,
		Filename:      upload.OriginalName,
		Verdict:       verdict,
		HistoryStatus: status,
		ClassifiedAt:  time.Now().UTC(),
	})

	return &usecase.ClassifyResult{
		Verdict:       verdict,
		HistoryStatus: status,
		Filename:      upload.OriginalName,
	}, nil
}

// record appends the verdict to the token holder's history. It never fails the request:
// the returned status says whether the verdict was recorded.
func (srv *classifyService) record(
	ctx context.Context,
	bearerToken string,
	upload *entity.TransientUpload,
	verdict entity.Verdict,
) (status, userID string) {
	if bearerToken == "" {
		return constants.HistorySkipped, ""
	}

	claims, err := srv.tokens.Verify(bearerToken)
	if err != nil {
		srv.log(ctx).Info("Ignoring invalid session token on classification", slog.Any("error", err))

		return constants.HistorySkipped, ""
	}
	userID = claims.UserID.String()

	err = srv.users.AppendHistory(ctx, claims.UserID, entity.NewHistoryEntry(upload.OriginalName, verdict))
	if err != nil {
		msg := "Failed to record classification history"
		if errors.Is(err, repository.ErrUserNotFound) {
			msg = "Session token refers to an unknown user"
		}
		srv.log(ctx).Warn(msg,
			slog.String("user_id", userID),
			slog.Any("error", err),
		)

		return constants.HistoryFailed, userID
	}

	return constants.HistoryRecorded, userID
}

// publish emits the event in the background; a slow or failing broker never delays the response.
func (srv *classifyService) publish(ctx context.Context, event *service.ClassificationEvent) {
	logger := srv.log(ctx)
	detached := context.WithoutCancel(ctx)

	srv.spawn(func() {
		publishCtx, cancel := context.WithTimeout(detached, srv.publishTimeout)
		defer cancel()

		if err := srv.publisher.PublishClassificationEvent(publishCtx, event); err != nil {
			logger.Warn("Failed to publish classification event", slog.Any("error", err))
		}
	})
}
