package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextInjectsIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := globalLogger
	globalLogger = NewWithWriter(&buf, Config{Level: "debug", Format: "json"})
	t.Cleanup(func() { globalLogger = prev })

	ctx := ContextWithIDs(context.Background(), "trace-1", "", "req-9")
	Info(ctx, "cart loaded", "user_id", "u1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cart loaded", entry["msg"])
	assert.Equal(t, "trace-1", entry["trace_id"])
	assert.Equal(t, "req-9", entry["request_id"])
	assert.Equal(t, "u1", entry["user_id"])
	_, hasSpan := entry["span_id"]
	assert.False(t, hasSpan)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := globalLogger
	globalLogger = NewWithWriter(&buf, Config{Level: "warn", Format: "text"})
	t.Cleanup(func() { globalLogger = prev })

	Info(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	Warn(context.Background(), "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("DEBUG").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}
