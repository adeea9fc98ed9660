package postgres

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"genrelens/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestPoolWaitReport(t *testing.T) {
	prev := sql.DBStats{WaitCount: 10, WaitDuration: time.Second}

	_, _, ok := poolWaitReport(prev, prev)
	assert.False(t, ok, "no new waits")

	level, attrs, ok := poolWaitReport(prev, sql.DBStats{WaitCount: 12, WaitDuration: time.Second + 10*time.Millisecond})
	require.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Contains(t, attrs, slog.Duration("avg_wait", 5*time.Millisecond))

	level, attrs, ok = poolWaitReport(prev, sql.DBStats{WaitCount: 11, WaitDuration: 2 * time.Second, InUse: 4})
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)
	assert.Contains(t, attrs, slog.Int64("waits", 1))
	assert.Contains(t, attrs, slog.Int("in_use", 4))
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    &config.Config{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.ErrorContains(t, err, "postgres config is required")
}
