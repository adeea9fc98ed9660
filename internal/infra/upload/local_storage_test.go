package upload

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"genrelens/config"
	"genrelens/internal/domain/entity"
	domainerrors "genrelens/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, maxSize string) (*LocalStorage, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := &config.Config{}
	cfg.Upload.Dir = dir
	cfg.Upload.FieldName = "audioFile"
	cfg.Upload.MaxFileSize = maxSize

	receiver, err := NewLocalStorage(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return receiver.(*LocalStorage), dir
}

type formPart struct {
	field    string
	filename string
	content  []byte
}

func buildMultipart(t *testing.T, parts ...formPart) (string, *bytes.Buffer) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, p := range parts {
		var w io.Writer
		var err error
		if p.filename != "" {
			w, err = writer.CreateFormFile(p.field, p.filename)
		} else {
			w, err = writer.CreateFormField(p.field)
		}
		require.NoError(t, err)
		_, err = w.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return writer.FormDataContentType(), body
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	return entries
}

func TestLocalStorage_Receive(t *testing.T) {
	storage, dir := newTestStorage(t, "1KiB")
	contentType, body := buildMultipart(t,
		formPart{field: "note", content: []byte("ignored")},
		formPart{field: "audioFile", filename: "song.MP3", content: []byte("ID3 audio bytes")},
	)

	upload, err := storage.Receive(context.Background(), contentType, body)
	require.NoError(t, err)

	assert.Equal(t, "song.MP3", upload.OriginalName)
	assert.True(t, strings.HasSuffix(upload.Filename, ".mp3"))
	assert.Equal(t, filepath.Join(dir, upload.Filename), upload.Path)
	assert.Equal(t, int64(len("ID3 audio bytes")), upload.Size)

	stored, err := os.ReadFile(upload.Path)
	require.NoError(t, err)
	assert.Equal(t, "ID3 audio bytes", string(stored))
}

func TestLocalStorage_Receive_ExactlyAtLimit(t *testing.T) {
	storage, _ := newTestStorage(t, "1KiB")
	contentType, body := buildMultipart(t,
		formPart{field: "audioFile", filename: "a.wav", content: bytes.Repeat([]byte{1}, 1024)},
	)

	upload, err := storage.Receive(context.Background(), contentType, body)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), upload.Size)
}

func TestLocalStorage_Receive_TooLarge(t *testing.T) {
	storage, dir := newTestStorage(t, "1KiB")
	contentType, body := buildMultipart(t,
		formPart{field: "audioFile", filename: "big.wav", content: bytes.Repeat([]byte{1}, 1025)},
	)

	upload, err := storage.Receive(context.Background(), contentType, body)
	assert.Nil(t, upload)
	assert.True(t, errors.Is(err, domainerrors.ErrFileTooLarge))
	assert.Empty(t, dirEntries(t, dir), "a rejected upload leaves nothing on disk")
}

func TestLocalStorage_DecimalSizeUnits(t *testing.T) {
	storage, _ := newTestStorage(t, "1KB")
	assert.Equal(t, int64(1000), storage.maxSize)

	contentType, body := buildMultipart(t,
		formPart{field: "audioFile", filename: "a.wav", content: bytes.Repeat([]byte{1}, 1000)},
	)
	_, err := storage.Receive(context.Background(), contentType, body)
	require.NoError(t, err)

	contentType, body = buildMultipart(t,
		formPart{field: "audioFile", filename: "b.wav", content: bytes.Repeat([]byte{1}, 1001)},
	)
	_, err = storage.Receive(context.Background(), contentType, body)
	assert.True(t, errors.Is(err, domainerrors.ErrFileTooLarge))
}

func TestLocalStorage_Receive_NoFile(t *testing.T) {
	storage, dir := newTestStorage(t, "1KiB")

	tests := []struct {
		name  string
		parts []formPart
	}{
		{name: "empty form"},
		{name: "wrong field", parts: []formPart{{field: "other", filename: "x.mp3", content: []byte("x")}}},
		{name: "field without filename", parts: []formPart{{field: "audioFile", content: []byte("x")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, body := buildMultipart(t, tt.parts...)

			upload, err := storage.Receive(context.Background(), contentType, body)
			assert.Nil(t, upload)
			assert.True(t, errors.Is(err, domainerrors.ErrNoFileUploaded))
		})
	}

	assert.Empty(t, dirEntries(t, dir))
}

func TestLocalStorage_Receive_NotMultipart(t *testing.T) {
	storage, _ := newTestStorage(t, "1KiB")

	for _, contentType := range []string{"", "application/json", "multipart/form-data"} {
		upload, err := storage.Receive(context.Background(), contentType, strings.NewReader("{}"))
		assert.Nil(t, upload)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidUpload), contentType)
	}
}

func TestLocalStorage_Receive_TruncatedBody(t *testing.T) {
	storage, dir := newTestStorage(t, "1KiB")
	contentType, body := buildMultipart(t,
		formPart{field: "audioFile", filename: "a.wav", content: []byte("some audio content")},
	)
	truncated := body.Bytes()[:body.Len()-20]

	upload, err := storage.Receive(context.Background(), contentType, bytes.NewReader(truncated))
	assert.Nil(t, upload)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidUpload))
	assert.Empty(t, dirEntries(t, dir))
}

func TestLocalStorage_Receive_ConcurrentNamesAreUnique(t *testing.T) {
	storage, dir := newTestStorage(t, "1KiB")

	const workers = 20
	names := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			contentType, body := buildMultipart(t,
				formPart{field: "audioFile", filename: "same.mp3", content: []byte("audio")},
			)
			upload, err := storage.Receive(context.Background(), contentType, body)
			if assert.NoError(t, err) {
				names <- upload.Filename
			}
		}()
	}
	wg.Wait()
	close(names)

	seen := make(map[string]struct{})
	for name := range names {
		seen[name] = struct{}{}
	}
	assert.Len(t, seen, workers)
	assert.Len(t, dirEntries(t, dir), workers)
}

func TestLocalStorage_Release(t *testing.T) {
	storage, dir := newTestStorage(t, "1KiB")
	contentType, body := buildMultipart(t,
		formPart{field: "audioFile", filename: "a.ogg", content: []byte("audio")},
	)

	upload, err := storage.Receive(context.Background(), contentType, body)
	require.NoError(t, err)

	storage.Release(context.Background(), upload)
	assert.Empty(t, dirEntries(t, dir))

	// A second release and a nil upload are both no-ops.
	storage.Release(context.Background(), upload)
	storage.Release(context.Background(), nil)
	storage.Release(context.Background(), &entity.TransientUpload{})
}

func TestNewLocalStorage_InvalidSize(t *testing.T) {
	for _, size := range []string{"lots", "0"} {
		cfg := &config.Config{}
		cfg.Upload.Dir = t.TempDir()
		cfg.Upload.MaxFileSize = size

		receiver, err := NewLocalStorage(cfg, slog.Default())
		assert.Error(t, err, size)
		assert.Nil(t, receiver)
	}
}

func TestSafeExtension(t *testing.T) {
	tests := map[string]string{
		"song.mp3":                ".mp3",
		"Track.FLAC":              ".flac",
		"noext":                   "",
		"weird.m p3":              "",
		"trailing.":               "",
		"a.verylongextensionname": "",
	}

	for name, want := range tests {
		assert.Equal(t, want, safeExtension(name), name)
	}
}
