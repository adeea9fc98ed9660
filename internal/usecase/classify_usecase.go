package usecase

import (
	"context"
	"io"

	"genrelens/internal/domain/entity"
)

// ClassifyRequest carries one upload through the classification pipeline.
type ClassifyRequest struct {
	ContentType string
	Body        io.Reader
	BearerToken string // empty when the caller sent no Authorization header
}

// ClassifyResult is the verdict plus what happened to the caller's history.
type ClassifyResult struct {
	Verdict       entity.Verdict
	HistoryStatus string
	Filename      string
}

// ClassifyUsecase runs the receive, classify, record pipeline for one request.
type ClassifyUsecase interface {
	Classify(ctx context.Context, req *ClassifyRequest) (*ClassifyResult, error)
}
