package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, format logFormat, ctx context.Context, event string, attrs ...slog.Attr) string {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	handler := newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: aw,
		format: format,
	})
	LogEvent(ctx, slog.New(handler).With("component", "conversation"), slog.LevelInfo, event, attrs...)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())
	return strings.TrimSpace(buf.String())
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	line := render(t, formatKV, ctx, "turn",
		slog.String("next_state", "LOGIN"),
		slog.String("state", "START"),
		slog.String("status", "OK"),
		slog.String("cause", "unit"),
	)
	tokens := strings.Split(line, " ")
	expected := []string{
		"ts=", "level=INFO", "component=conversation", "event=turn", "status=ok",
		"rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "state=START", "next_state=LOGIN",
	}
	require.GreaterOrEqual(t, len(tokens), len(expected), line)
	for i, prefix := range expected {
		require.Truef(t, strings.HasPrefix(tokens[i], prefix), "token %d = %s, want prefix %s", i, tokens[i], prefix)
	}
}

func TestStructuredHandlerJSON(t *testing.T) {
	line := render(t, formatJSON, WithRID(Background(), "12:34:56"), "backend.fail",
		slog.String("op", "list_jobs"),
		slog.Duration("duration", 1500*time.Microsecond),
		slog.Int("http_status", 502),
	)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &fields))
	require.Equal(t, "INFO", fields["level"])
	require.Equal(t, "backend.fail", fields["event"])
	require.Equal(t, CompactRID("12:34:56"), fields["rid"])
	require.Equal(t, "12:34:56", fields["rid_full"])
	require.EqualValues(t, 2, fields["duration_ms"])
	require.EqualValues(t, 502, fields["http_status"])
	require.Contains(t, fields, "ts_unix_nano")
	require.True(t, strings.HasPrefix(line, `{"ts":`))
}

func TestStructuredHandlerCompactRIDKV(t *testing.T) {
	line := render(t, formatKV, WithRID(Background(), "123:456:789"), "rid.test")
	require.Contains(t, line, "rid="+CompactRID("123:456:789"))
	require.NotContains(t, line, "rid_full=")
}

func TestStructuredHandlerRedactsSecrets(t *testing.T) {
	line := render(t, formatKV, Background(), "login",
		slog.String("password", "hunter2"),
		slog.Group("req", slog.String("Authorization", "Basic abc")),
		slog.String("token", "/login"),
	)
	require.NotContains(t, line, "hunter2")
	require.NotContains(t, line, "Basic abc")
	require.Contains(t, line, "password=***")
	require.Contains(t, line, "req.Authorization=***")
	require.Contains(t, line, "token=/login")
}

func TestStructuredHandlerDropsUnknownOutcome(t *testing.T) {
	line := render(t, formatKV, Background(), "audit", slog.String("outcome", "maybe"))
	require.NotContains(t, line, "outcome=")
}

func TestCompactRID(t *testing.T) {
	require.Equal(t, "3r.a.z", CompactRID("135:10:35"))
	require.Equal(t, "not-a-rid", CompactRID("not-a-rid"))
	require.Equal(t, "1:x:2", CompactRID("1:x:2"))
}

func TestSanitizeLimit(t *testing.T) {
	require.Equal(t, "ab\tc", SanitizeLimit("a\x00b\tc\x7f", 10))
	require.Equal(t, "при", SanitizeLimit("привет", 3))
	require.Empty(t, SanitizeLimit("abc", 0))
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	got := []bool{s.Allow(), s.Allow(), s.Allow(), s.Allow()}
	require.Equal(t, []bool{true, false, false, true}, got)

	s.Set(0, 0)
	require.True(t, s.Allow())

	num, den := parseRatioSpec("2/5")
	require.Equal(t, [2]int{2, 5}, [2]int{num, den})
	num, den = parseRatioSpec("10")
	require.Equal(t, [2]int{1, 10}, [2]int{num, den})
}

func TestStatus(t *testing.T) {
	require.Equal(t, "ok", Status(nil))
	require.Equal(t, "cancelled", Status(context.Canceled))
	require.Equal(t, "error", Status(io.EOF))
}
