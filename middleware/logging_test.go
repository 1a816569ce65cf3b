package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/logger"
	"github.com/dmitrymomot/raptor/core/response"
	"github.com/dmitrymomot/raptor/middleware"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter(), logger.WithLevel(slog.LevelDebug)), &buf
}

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestLoggingRecordsRequest(t *testing.T) {
	t.Parallel()

	log, buf := captureLogger()
	k := newKernel(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: func() string { return "rid-1" }}),
		middleware.LoggingWithLogger(log),
		text("hello"),
	)

	serve(k, get("/users?page=2"))

	records := decodeRecords(t, buf)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "request completed", rec["msg"])
	assert.Equal(t, "http", rec["component"])
	assert.Equal(t, http.MethodGet, rec["method"])
	assert.Equal(t, "/users", rec["path"])
	assert.Equal(t, "page=2", rec["query"])
	assert.Equal(t, "rid-1", rec["request_id"])
	assert.EqualValues(t, http.StatusOK, rec["status_code"])
	assert.EqualValues(t, len("hello"), rec["bytes_out"])
	assert.Contains(t, rec, "latency")
}

func TestLoggingLevelByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		level string
		msg   string
	}{
		{name: "client error", err: response.ErrNotFound, level: "WARN", msg: "request completed"},
		{name: "server error", err: response.ErrServerError, level: "ERROR", msg: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, buf := captureLogger()
			k := newKernel(middleware.LoggingWithLogger(log), fails(tt.err))

			serve(k, get("/"))

			records := decodeRecords(t, buf)
			require.Len(t, records, 1)
			assert.Equal(t, tt.level, records[0]["level"])
			assert.Equal(t, tt.msg, records[0]["msg"])
			assert.Contains(t, records[0], "error")
		})
	}
}

func TestLoggingSlowRequest(t *testing.T) {
	t.Parallel()

	log, buf := captureLogger()
	k := newKernel(middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger:               log,
		SlowRequestThreshold: time.Millisecond,
	}), func(*handler.Context, handler.Next) (any, error) {
		time.Sleep(5 * time.Millisecond)
		return "ok", nil
	})

	serve(k, get("/"))

	records := decodeRecords(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, "WARN", records[0]["level"])
	assert.Equal(t, "slow request", records[0]["msg"])
}

func TestLoggingHeadersRedacted(t *testing.T) {
	t.Parallel()

	log, buf := captureLogger()
	k := newKernel(middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger:     log,
		LogHeaders: true,
	}), text("ok"))

	req := get("/")
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Custom", "visible")
	serve(k, req)

	out := buf.String()
	assert.NotContains(t, out, "Bearer secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "response_headers")
}

func TestLoggingSkip(t *testing.T) {
	t.Parallel()

	log, buf := captureLogger()
	k := newKernel(middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: log,
		Skip:   func(ctx *handler.Context) bool { return ctx.Request().URL.Path == "/health" },
	}), text("ok"))

	w := serve(k, get("/health"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())
}
