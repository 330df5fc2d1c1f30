package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	return out
}

func TestCloudRunHandlerWritesSeverityAndData(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerWriter(&buf, slog.LevelInfo))

	log.Warn("entry archived but not deleted", "archive_id", "a1", "error", errors.New("boom"))

	got := decodeLine(t, &buf)
	if got["severity"] != "WARNING" {
		t.Fatalf("severity mismatch: %v", got["severity"])
	}
	if got["message"] != "entry archived but not deleted" {
		t.Fatalf("message mismatch: %v", got["message"])
	}
	data, ok := got["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", got["data"])
	}
	if data["archive_id"] != "a1" || data["error"] != "boom" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestCloudRunHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerWriter(&buf, slog.LevelWarn))

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestCloudRunHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerWriter(&buf, slog.LevelDebug)).
		With("request_id", "r1").
		WithGroup("entry").
		With("kind", "expenses")

	log.Debug("created", "id", "e1")

	got := decodeLine(t, &buf)
	data := got["data"].(map[string]any)
	if data["request_id"] != "r1" {
		t.Fatalf("request_id missing: %v", data)
	}
	entry, ok := data["entry"].(map[string]any)
	if !ok {
		t.Fatalf("expected entry group, got %v", data)
	}
	if entry["kind"] != "expenses" || entry["id"] != "e1" {
		t.Fatalf("unexpected group contents: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
