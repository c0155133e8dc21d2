package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_DefaultLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("visible info")
	if !strings.Contains(buf.String(), "visible info") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()
	Debug("hidden debug")
	if strings.Contains(buf.String(), "hidden debug") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestInit_QuietLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	defer resetLogger()

	Info("quiet info")
	Warn("quiet warn")
	if buf.Len() != 0 {
		t.Error("Info and Warn should be suppressed when Quiet=true")
	}

	Error("loud error")
	if !strings.Contains(buf.String(), "loud error") {
		t.Error("Error message should be logged when Quiet=true")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("json message", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "json message" || entry["key"] != "value" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	With("component", "test").Info("attributed")
	out := buf.String()
	if !strings.Contains(out, "component=test") || !strings.Contains(out, "attributed") {
		t.Errorf("With attributes missing: %s", out)
	}
}
