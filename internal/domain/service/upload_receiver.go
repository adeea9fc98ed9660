package service

import (
	"context"
	"io"

	"genrelens/internal/domain/entity"
)

// UploadReceiver parks an uploaded file on local disk for the lifetime of one request.
type UploadReceiver interface {
	// Receive reads the multipart body and stores the single expected file part.
	// Rejections are domainerrors.ErrNoFileUploaded, ErrFileTooLarge or ErrInvalidUpload;
	// nothing is left on disk when Receive fails.
	Receive(ctx context.Context, contentType string, body io.Reader) (*entity.TransientUpload, error)

	// Release deletes the stored file. Releasing an already-deleted upload is a no-op.
	Release(ctx context.Context, upload *entity.TransientUpload)
}
