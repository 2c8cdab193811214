package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger = WithComponent(logger, "chunker")
	logger.Info("chunking complete", Int("chunks", 4), String("input", "words.json"))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO chunker: chunking complete") {
		t.Errorf("expected component-prefixed message, got %q", line)
	}
	if !strings.Contains(line, "chunks=4") {
		t.Errorf("expected chunks=4 attribute, got %q", line)
	}
	if !strings.Contains(line, "input=words.json") {
		t.Errorf("expected input attribute, got %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Warn("odd value", String("text", "two words"))
	if !strings.Contains(buf.String(), `text="two words"`) {
		t.Errorf("expected quoted value, got %q", buf.String())
	}
}

func TestJSONHandlerRenamesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Error("boom", Int("attempt", 2))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("parse JSON log line: %v", err)
	}
	if record["msg"] != "boom" {
		t.Errorf("expected msg key, got %v", record)
	}
	if record["level"] != "error" {
		t.Errorf("expected lowercase level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Errorf("expected ts key, got %v", record)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info record suppressed, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn record emitted, got %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Info("nothing happens")
	if logger.Enabled(nil, 0) {
		t.Error("expected no-op logger to report disabled")
	}
}
