package upload

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"genrelens/config"
	deliverycontext "genrelens/internal/delivery/context"
	"genrelens/internal/domain/entity"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
)

const maxExtensionLength = 16

// LocalStorage parks uploads in a directory on local disk.
type LocalStorage struct {
	dir       string
	fieldName string
	maxSize   int64
	logger    *slog.Logger
}

// NewLocalStorage creates the upload directory and returns a receiver writing into it.
func NewLocalStorage(cfg *config.Config, logger *slog.Logger) (service.UploadReceiver, error) {
	maxSize, err := bytes.Parse(cfg.Upload.MaxFileSize)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid upload.maxFileSize %q", cfg.Upload.MaxFileSize)
	}
	if maxSize <= 0 {
		return nil, errors.Errorf("upload.maxFileSize must be positive, got %q", cfg.Upload.MaxFileSize)
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload directory %s", cfg.Upload.Dir)
	}

	logger.Info("Upload storage ready",
		slog.String("dir", cfg.Upload.Dir),
		slog.String("field", cfg.Upload.FieldName),
		slog.String("max_file_size", bytes.Format(maxSize)),
	)

	return &LocalStorage{
		dir:       cfg.Upload.Dir,
		fieldName: cfg.Upload.FieldName,
		maxSize:   maxSize,
		logger:    logger,
	}, nil
}

func (s *LocalStorage) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Receive streams the multipart body part by part and stores the first file part
// named after the configured field. Other parts are skipped unread.
func (s *LocalStorage) Receive(ctx context.Context, contentType string, body io.Reader) (*entity.TransientUpload, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, domainerrors.ErrInvalidUpload.WithDetails("expected a multipart/form-data body")
	}

	boundary := params["boundary"]
	if boundary == "" {
		return nil, domainerrors.ErrInvalidUpload.WithDetails("multipart boundary is missing")
	}

	reader := multipart.NewReader(body, boundary)
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, domainerrors.ErrNoFileUploaded
		}
		if err != nil {
			return nil, domainerrors.ErrInvalidUpload.WithDetails(err.Error())
		}

		if part.FormName() != s.fieldName || part.FileName() == "" {
			_ = part.Close()

			continue
		}

		upload, err := s.store(ctx, part)
		_ = part.Close()

		return upload, err
	}
}

func (s *LocalStorage) store(ctx context.Context, part *multipart.Part) (*entity.TransientUpload, error) {
	originalName := filepath.Base(part.FileName())
	filename := uuid.New().String() + safeExtension(originalName)
	path := filepath.Join(s.dir, filename)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create upload file %s", filename)
	}

	written, copyErr := io.Copy(file, io.LimitReader(part, s.maxSize+1))
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		s.discard(ctx, path)

		return nil, domainerrors.ErrInvalidUpload.WithDetails(copyErr.Error())
	case written > s.maxSize:
		s.discard(ctx, path)

		return nil, domainerrors.ErrFileTooLarge.WithDetails("limit is " + bytes.Format(s.maxSize))
	case closeErr != nil:
		s.discard(ctx, path)

		return nil, errors.Wrapf(closeErr, "failed to flush upload file %s", filename)
	}

	s.log(ctx).Debug("Upload stored",
		slog.String("filename", filename),
		slog.String("original_name", originalName),
		slog.Int64("size", written),
	)

	return &entity.TransientUpload{
		Filename:     filename,
		OriginalName: originalName,
		Path:         path,
		Size:         written,
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
	}, nil
}

// Release removes the upload's file. A file that is already gone is not an error.
func (s *LocalStorage) Release(ctx context.Context, upload *entity.TransientUpload) {
	if upload == nil || upload.Path == "" {
		return
	}

	err := os.Remove(upload.Path)
	switch {
	case err == nil:
		s.log(ctx).Debug("Upload released", slog.String("filename", upload.Filename))
	case errors.Is(err, fs.ErrNotExist):
		s.log(ctx).Debug("Upload already released", slog.String("filename", upload.Filename))
	default:
		s.log(ctx).Error("Failed to release upload",
			slog.String("filename", upload.Filename),
			slog.Any("error", err),
		)
	}
}

func (s *LocalStorage) discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log(ctx).Error("Failed to remove rejected upload", slog.String("path", path), slog.Any("error", err))
	}
}

// safeExtension keeps a short alphanumeric extension from the client's filename.
func safeExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > maxExtensionLength {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}

	return ext
}
