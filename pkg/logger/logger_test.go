package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileLogger(t *testing.T) (Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.log")
	log, err := NewLogger(&Config{
		Level:            InfoLevel,
		Format:           JSONFormat,
		Output:           FileOutput,
		File:             path,
		DisableTimestamp: true,
	})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	return log, path
}

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("unmarshaling log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestWithFieldReachesOutput(t *testing.T) {
	log, path := fileLogger(t)

	log.WithField("file", "a.xlsx").Info("processing")

	entries := readLines(t, path)
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0]["file"] != "a.xlsx" {
		t.Errorf("file field = %v, want a.xlsx", entries[0]["file"])
	}
}

func TestWithFieldsChainAccumulates(t *testing.T) {
	log, path := fileLogger(t)

	log.WithComponent("extract").
		WithFields(Fields{"rows": 3}).
		WithError(fmt.Errorf("boom")).
		Warn("partial sheet")

	entries := readLines(t, path)
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry["component"] != "extract" {
		t.Errorf("component = %v, want extract", entry["component"])
	}
	if entry["rows"] != float64(3) {
		t.Errorf("rows = %v, want 3", entry["rows"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestConfigValidateRejectsBadLevel(t *testing.T) {
	cfg := &Config{Level: "loud", Format: TextFormat, Output: StderrOutput}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for unknown level")
	}
}
