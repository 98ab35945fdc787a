package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LogConfig{
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
		ServiceName: "query-engine",
	})
	return l, &buf
}

func TestWithContextAddsTraceID(t *testing.T) {
	l, buf := newBufferLogger()

	ctx := ContextWithTraceID(context.Background(), "req-42")
	l.WithContext(ctx).Info().Msg("query answered")

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"req-42"`)
	assert.Contains(t, out, `"service":"query-engine"`)
}

func TestWithContextWithoutTraceID(t *testing.T) {
	l, buf := newBufferLogger()

	l.WithContext(context.Background()).Info().Msg("no trace")

	assert.NotContains(t, buf.String(), "trace_id")
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	ctx := ContextWithTraceID(context.Background(), "req-7")
	assert.Equal(t, "req-7", TraceIDFromContext(ctx))
}

func TestSessionAndEventFields(t *testing.T) {
	l, buf := newBufferLogger()

	l.WithSession("sess-1").WithOperation("query").Info().
		Str("intent", "player_detail").
		Int("players", 2).
		Float64("confidence", 0.8).
		Bool("cached", false).
		Dur("took", 5*time.Millisecond).
		Err(errors.New("boom")).
		Interface("extra", map[string]int{"n": 1}).
		Msg("fields")

	out := buf.String()
	assert.Contains(t, out, `"session_id":"sess-1"`)
	assert.Contains(t, out, `"operation":"query"`)
	assert.Contains(t, out, `"intent":"player_detail"`)
	assert.Contains(t, out, `"players":2`)
	assert.Contains(t, out, `"confidence":0.8`)
	assert.Contains(t, out, `"cached":false`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"nonsense", "info"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in).String(), "level %q", tt.in)
	}
}
