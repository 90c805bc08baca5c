package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nesmy/users-api/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedAdapter(level gormlogger.LogLevel, cfg *GormLoggerConfig) (*GormLoggerAdapter, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := NewGormLoggerAdapterWithConfig(level, cfg)
	adapter.logger = zap.New(core)
	return adapter, logs
}

func TestTraceLogsQuery(t *testing.T) {
	adapter, logs := newObservedAdapter(gormlogger.Info, nil)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM users", 3
	}, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "SQL query executed", entries[0].Message)
	assert.Equal(t, "SELECT * FROM users", entries[0].ContextMap()["sql"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
}

func TestTraceCarriesRequestID(t *testing.T) {
	adapter, logs := newObservedAdapter(gormlogger.Info, nil)
	ctx := persistence.WithRequestID(context.Background(), "req-42")

	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestTraceIgnoresRecordNotFound(t *testing.T) {
	adapter, logs := newObservedAdapter(gormlogger.Error, nil)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM users WHERE user_id = 99", 0
	}, gormlogger.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestTraceLogsError(t *testing.T) {
	adapter, logs := newObservedAdapter(gormlogger.Error, nil)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO users", 0
	}, errors.New("duplicate entry"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Database operation failed", entries[0].Message)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}

func TestTraceSlowQueryWarning(t *testing.T) {
	adapter, logs := newObservedAdapter(gormlogger.Warn, &GormLoggerConfig{
		SlowThreshold:             time.Nanosecond,
		IgnoreRecordNotFoundError: true,
	})

	adapter.Trace(context.Background(), time.Now().Add(-time.Millisecond), func() (string, int64) {
		return "SELECT * FROM users", 100
	}, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Slow SQL query", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestTraceSilentLevel(t *testing.T) {
	adapter, logs := newObservedAdapter(gormlogger.Silent, nil)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	assert.Zero(t, logs.Len())
}

func TestLogModePreservesLoggerAndConfig(t *testing.T) {
	adapter, _ := newObservedAdapter(gormlogger.Info, nil)

	next, ok := adapter.LogMode(gormlogger.Error).(*GormLoggerAdapter)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Error, next.logLevel)
	assert.Same(t, adapter.logger, next.logger)
	assert.Same(t, adapter.config, next.config)
}
