package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func drain(h *PGHandler) {
	h.mu.Lock()
	h.buffer = h.buffer[:0]
	h.mu.Unlock()
	h.Stop()
}

func TestPGHandler_MapsKnownKeys(t *testing.T) {
	h := newPGHandler(nil, time.Hour)
	defer drain(h)

	log := slog.New(h).With("request_id", "req-1")
	log.Info("ignored")
	log.Error("save failed",
		"user_id", "u-1",
		"action", "save_recipe",
		"method", "POST",
		"path", "/api/recipes/1/save",
		"error", "boom",
		"latency_ms", 12.6,
		"recipe_id", "r-9",
	)

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.buffer, 1)
	entry := h.buffer[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "save failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	assert.Equal(t, "save_recipe", entry.Action)
	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/api/recipes/1/save", entry.Path)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, map[string]any{"recipe_id": "r-9"}, extra)
}

func TestLatencyMs(t *testing.T) {
	assert.Equal(t, 250, latencyMs(slog.DurationValue(250*time.Millisecond)))
	assert.Equal(t, 7, latencyMs(slog.Int64Value(7)))
	assert.Equal(t, 0, latencyMs(slog.StringValue("fast")))
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	log := slog.New(NewMultiHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	log.Info("hello")
	log.Error("broken")

	assert.Contains(t, info.String(), "hello")
	assert.Contains(t, info.String(), "broken")
	assert.NotContains(t, errs.String(), "hello")
	assert.Contains(t, errs.String(), "broken")
	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestMultiHandler_KeepsGoingAfterFailure(t *testing.T) {
	var out bytes.Buffer
	h := NewMultiHandler(failingHandler{}, slog.NewTextHandler(&out, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "still logged", 0))
	assert.EqualError(t, err, "disk full")
	assert.Contains(t, out.String(), "still logged")
}

func TestPurgeOlderThan(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cutoff := time.Now().AddDate(0, 0, -30)
	mock.ExpectExec(`DELETE FROM "system_logs" WHERE timestamp < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.Equal(t, int64(3), purgeOlderThan(context.Background(), db, cutoff))
	assert.NoError(t, mock.ExpectationsWereMet())
}
