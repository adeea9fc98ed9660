package logs

import (
	"bytes"
	"log/slog"
	"testing"

	"genrelens/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "loud"

	logger, err := New(Params{Config: cfg})
	require.Error(t, err)
	assert.Nil(t, logger)
}

func TestNewLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.ServiceName = "genrelens"

	logger, err := newLogger(&buf, cfg)
	require.NoError(t, err)

	logger.Info("callback", slog.String("code", "4/0Ab-secret"), slog.String("Token", "eyJ"), slog.String("filename", "bark.wav"))

	out := buf.String()
	assert.NotContains(t, out, "4/0Ab-secret")
	assert.NotContains(t, out, "eyJ")
	assert.Contains(t, out, `"filename":"bark.wav"`)
	assert.Contains(t, out, `"service":"genrelens"`)
}

func TestNewLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Log.Pretty = true
	cfg.Env.Log.Level = "warn"

	logger, err := newLogger(&buf, cfg)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", slog.Int("status", 401))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown status=401")
}
