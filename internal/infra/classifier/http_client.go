package classifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"genrelens/config"
	deliverycontext "genrelens/internal/delivery/context"
	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/service"

	"github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
)

const (
	maxVerdictSize      = 1 << 20
	maxFaultMessageSize = 512
)

// HTTPClient posts uploads to the classification service as multipart/form-data.
type HTTPClient struct {
	endpoint   string
	fieldName  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a classifier for classifier.endpoint.
func NewHTTPClient(cfg *config.Config, logger *slog.Logger) (service.Classifier, error) {
	if cfg.Classifier.Endpoint == "" {
		return nil, errors.New("classifier endpoint must be provided")
	}

	logger.Info("Classification service configured",
		slog.String("endpoint", cfg.Classifier.Endpoint),
		slog.Duration("timeout", cfg.Classifier.Timeout),
	)

	return &HTTPClient{
		endpoint:   cfg.Classifier.Endpoint,
		fieldName:  cfg.Classifier.FieldName,
		timeout:    cfg.Classifier.Timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

func (c *HTTPClient) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

// Classify streams the upload upstream and returns the verdict bytes untouched.
func (c *HTTPClient) Classify(ctx context.Context, upload *entity.TransientUpload) (entity.Verdict, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	file, err := os.Open(upload.Path)
	if err != nil {
		return nil, &service.ServiceFault{Message: "failed to open upload", Err: err}
	}
	defer file.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	done := make(chan struct{})

	go func() {
		defer close(done)
		pw.CloseWithError(c.writeForm(form, upload, file))
	}()
	defer func() {
		_ = pr.Close()
		<-done
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, pr)
	if err != nil {
		return nil, &service.ServiceFault{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if upload.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, upload.RequestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &service.ServiceFault{Message: "request timed out", Err: err}
		}

		return nil, &service.ServiceFault{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerdictSize+1))
	if err != nil {
		return nil, &service.ServiceFault{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	c.log(ctx).Debug("Classification service responded",
		slog.Int("status", resp.StatusCode),
		slog.String("size", bytes.Format(int64(len(body)))),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &service.ServiceFault{StatusCode: resp.StatusCode, Message: truncate(body)}
	}

	switch {
	case len(body) == 0:
		return nil, &service.ServiceFault{StatusCode: resp.StatusCode, Message: "empty response"}
	case len(body) > maxVerdictSize:
		return nil, &service.ServiceFault{StatusCode: resp.StatusCode, Message: "response too large"}
	case !json.Valid(body):
		return nil, &service.ServiceFault{StatusCode: resp.StatusCode, Message: "response is not valid JSON"}
	}

	return entity.Verdict(body), nil
}

func (c *HTTPClient) writeForm(form *multipart.Writer, upload *entity.TransientUpload, file io.Reader) error {
	part, err := form.CreateFormFile(c.fieldName, upload.OriginalName)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(form.Close())
}

func truncate(body []byte) string {
	if len(body) > maxFaultMessageSize {
		return string(body[:maxFaultMessageSize]) + "..."
	}

	return string(body)
}
