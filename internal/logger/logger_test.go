package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONEnabled(t *testing.T) {
	if New(false).JSONEnabled() {
		t.Fatal("expected false")
	}
	if !New(true).JSONEnabled() {
		t.Fatal("expected true")
	}
}

func TestPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(false, &buf)
	l.Info("hello", map[string]any{"n": 1})
	if !strings.HasPrefix(buf.String(), "[INFO] hello") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(true, &buf)
	l.Error("boom", map[string]any{"filename": "001_init.sql"})
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["level"] != "ERROR" || payload["msg"] != "boom" || payload["filename"] != "001_init.sql" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}
