package service

import (
	"context"
	"fmt"

	"genrelens/internal/domain/entity"
)

// Classifier relays an upload to the remote classification service.
type Classifier interface {
	// Classify sends the upload's bytes upstream and returns the verdict,
	// or a *ServiceFault when the upstream cannot produce one.
	Classify(ctx context.Context, upload *entity.TransientUpload) (entity.Verdict, error)
}

// ServiceFault describes why the classification service produced no verdict.
// StatusCode is zero when no HTTP response was received.
type ServiceFault struct {
	StatusCode int
	Message    string
	Err        error
}

func (f *ServiceFault) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("classification service returned %d: %s", f.StatusCode, f.Message)
	}
	if f.Err != nil {
		return fmt.Sprintf("classification service: %s: %v", f.Message, f.Err)
	}

	return "classification service: " + f.Message
}

func (f *ServiceFault) Unwrap() error {
	return f.Err
}
