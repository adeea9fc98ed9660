package classifier

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"genrelens/config"
	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const verdictJSON = `{"genre":"jazz","confidence":0.91,"top":[{"genre":"jazz","p":0.91},{"genre":"blues","p":0.05}]}`

func newTestClient(t *testing.T, endpoint string, timeout time.Duration) *HTTPClient {
	t.Helper()

	cfg := &config.Config{}
	cfg.Classifier.Endpoint = endpoint
	cfg.Classifier.FieldName = "file"
	cfg.Classifier.Timeout = timeout

	client, err := NewHTTPClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return client.(*HTTPClient)
}

func newTestUpload(t *testing.T, content string) *entity.TransientUpload {
	t.Helper()

	path := filepath.Join(t.TempDir(), "0190c0de.mp3")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return &entity.TransientUpload{
		Filename:     "0190c0de.mp3",
		OriginalName: "take five.mp3",
		Path:         path,
		Size:         int64(len(content)),
		RequestID:    "req-1",
	}
}

func TestHTTPClient_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()

		content, _ := io.ReadAll(file)
		assert.Equal(t, "audio-bytes", string(content))
		assert.Equal(t, "take five.mp3", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, verdictJSON)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, time.Second)

	verdict, err := client.Classify(context.Background(), newTestUpload(t, "audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, verdictJSON, string(verdict), "verdict is relayed byte-for-byte")
}

func TestHTTPClient_Classify_Deterministic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = io.WriteString(w, verdictJSON)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, time.Second)
	upload := newTestUpload(t, "audio")

	first, err := client.Classify(context.Background(), upload)
	require.NoError(t, err)
	second, err := client.Classify(context.Background(), upload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHTTPClient_Classify_Faults(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "upstream error", status: http.StatusInternalServerError, body: "model crashed", wantStatus: 500, wantMsg: "model crashed"},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"unsupported format"}`, wantStatus: 400, wantMsg: "unsupported format"},
		{name: "empty body", status: http.StatusOK, body: "", wantStatus: 200, wantMsg: "empty response"},
		{name: "not json", status: http.StatusOK, body: "<html>oops</html>", wantStatus: 200, wantMsg: "not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, time.Second)

			verdict, err := client.Classify(context.Background(), newTestUpload(t, "audio"))
			assert.Nil(t, verdict)

			var fault *service.ServiceFault
			require.True(t, errors.As(err, &fault))
			assert.Equal(t, tt.wantStatus, fault.StatusCode)
			assert.Contains(t, fault.Message, tt.wantMsg)
		})
	}
}

func TestHTTPClient_Classify_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, 50*time.Millisecond)

	verdict, err := client.Classify(context.Background(), newTestUpload(t, "audio"))
	assert.Nil(t, verdict)

	var fault *service.ServiceFault
	require.True(t, errors.As(err, &fault))
	assert.Zero(t, fault.StatusCode)
	assert.Equal(t, "request timed out", fault.Message)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestHTTPClient_Classify_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := newTestClient(t, endpoint, time.Second)

	verdict, err := client.Classify(context.Background(), newTestUpload(t, "audio"))
	assert.Nil(t, verdict)

	var fault *service.ServiceFault
	require.True(t, errors.As(err, &fault))
	assert.Zero(t, fault.StatusCode)
	assert.Equal(t, "request failed", fault.Message)
}

func TestHTTPClient_Classify_MissingFile(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", time.Second)

	_, err := client.Classify(context.Background(), &entity.TransientUpload{Path: filepath.Join(t.TempDir(), "gone.mp3")})

	var fault *service.ServiceFault
	require.True(t, errors.As(err, &fault))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestHTTPClient_Classify_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := client.Classify(ctx, newTestUpload(t, "audio"))

	var fault *service.ServiceFault
	require.True(t, errors.As(err, &fault))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxFaultMessageSize+10)

	assert.Equal(t, "short", truncate([]byte("short")))
	assert.Len(t, truncate([]byte(long)), maxFaultMessageSize+3)
}

func TestNewHTTPClient_RequiresEndpoint(t *testing.T) {
	client, err := NewHTTPClient(&config.Config{}, slog.Default())
	assert.Error(t, err)
	assert.Nil(t, client)
}
