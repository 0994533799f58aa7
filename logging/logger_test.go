package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/calciumlabs/calcium/logging"
)

func TestNew_TextLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "warn", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn line missing from output: %s", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "info", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("parsed expression", "n", 42)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "parsed expression" {
		t.Errorf("want msg field, got %v", record)
	}
	if record["n"] != float64(42) {
		t.Errorf("want n=42, got %v", record["n"])
	}
}

func TestNew_With(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "info", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.With("session", "abc").Info("ready")
	if !strings.Contains(buf.String(), "session=abc") {
		t.Errorf("attached attribute missing: %s", buf.String())
	}
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	var buf bytes.Buffer
	if _, err := logging.New(&buf, "loud", "text"); err == nil {
		t.Error("unknown level should fail")
	}
	if _, err := logging.New(&buf, "info", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestNoOp(t *testing.T) {
	log := logging.NoOp()
	log.Debug("a")
	log.With("k", "v").Error("b")
}
