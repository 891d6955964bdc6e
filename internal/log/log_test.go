package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Level: level, Format: "json", Component: ComponentApp, Output: buf})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo)

	logger.WithComponent(ComponentLedger).Info("entry stored", FieldEntityID, "e1")
	logger.Debug("dropped")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1", len(lines))
	}
	if lines[0][FieldComponent] != ComponentLedger {
		t.Errorf("component = %v, want %v", lines[0][FieldComponent], ComponentLedger)
	}
	if lines[0][FieldEntityID] != "e1" {
		t.Errorf("entity_id = %v, want e1", lines[0][FieldEntityID])
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelDebug))
	ctx := context.Background()
	r := httptest.NewRequest(http.MethodGet, "/api/reports/dre?x=1", nil)

	sl.LogHTTPEnd(ctx, r, "req_1", http.StatusNotFound, 3, "10.0.0.1")
	sl.LogMutation(ctx, ComponentRegistry, OpDelete, "project", "p1")
	sl.LogError(ctx, "export failed", errors.New("boom"), ComponentExport, OpExport, nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3", len(lines))
	}
	if lines[0]["level"] != "WARN" || lines[0][FieldStatusCode] != float64(404) || lines[0][FieldRequestID] != "req_1" {
		t.Errorf("LogHTTPEnd() = %v", lines[0])
	}
	if lines[1][FieldEntity] != "project" || lines[1][FieldOperation] != OpDelete || lines[1][FieldComponent] != ComponentRegistry {
		t.Errorf("LogMutation() = %v", lines[1])
	}
	if lines[2]["level"] != "ERROR" || lines[2][FieldError] != "boom" {
		t.Errorf("LogError() = %v", lines[2])
	}
}

func TestMiddlewareChain(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf, slog.LevelInfo)

	var got *Logger
	h := Middleware(base)(ComponentMiddleware(ComponentReports)(RequestIDMiddleware(func(*http.Request) string { return "req_9" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = FromContext(r.Context())
			got.InfoContext(r.Context(), "inside")
		}))))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || got.Component() != ComponentReports {
		t.Fatalf("FromContext() component = %v, want %v", got, ComponentReports)
	}
	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][FieldRequestID] != "req_9" {
		t.Errorf("log lines = %v", lines)
	}
}

func TestFromContextDefault(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Errorf("FromContext(empty) = %v", l)
	}
}
