package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(Config{Level: "not-a-level"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestBuild_JSONEncoding(t *testing.T) {
	var buf bytes.Buffer
	logger := build(Config{Level: "info", Encoding: "json"}, zapcore.AddSync(&buf))

	logger.Info("area created", zap.String("id", "a1"))
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "area created", line["msg"])
	assert.Equal(t, "a1", line["id"])
	assert.Contains(t, line, "timestamp")
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithOwner(ctx, "u1")
	FromContext(ctx, base).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "u1", fields["owner"])
}

func TestFromContext_Client(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	ctx := ContextWithClient(context.Background(), "10.0.0.7:5123", "homeplanner-web")
	FromContext(ctx, zap.New(core)).Info("hello")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "10.0.0.7:5123", fields["remote_addr"])
	assert.Equal(t, "homeplanner-web", fields["user_agent"])

	partial := ContextWithClient(context.Background(), "", "curl")
	FromContext(partial, zap.New(core)).Info("again")
	fields = logs.All()[1].ContextMap()
	assert.NotContains(t, fields, "remote_addr")
	assert.Equal(t, "curl", fields["user_agent"])
}

func TestFromContext_NoValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	FromContext(context.Background(), base).Info("hello")
	assert.Empty(t, logs.All()[0].ContextMap())
	assert.Nil(t, FromContext(context.Background(), nil))
}
