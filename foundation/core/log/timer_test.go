// File: timer_test.go
// Title: Timer Tests
// Description: Tests for timer completion and failure logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with timer tests
// - 2026-10-19 v0.2.0: Duration carried on the entry

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		lines = append(lines, m)
	}
	return lines
}

func TestTimer_Stop(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithLevel(LevelDebug)

	timer := logger.StartTimer("parse").WithField("path", "a.ql")
	if !timer.IsRunning() {
		t.Fatal("timer should be running")
	}

	timer.Stop(Field("statements", 3))
	if timer.IsRunning() {
		t.Error("timer should be stopped")
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1", len(lines))
	}
	line := lines[0]
	if line["message"] != "parse completed" {
		t.Errorf("message = %v", line["message"])
	}
	if line["level"] != "debug" {
		t.Errorf("level = %v", line["level"])
	}
	if line["path"] != "a.ql" || line["statements"] != float64(3) {
		t.Errorf("fields not merged: %v", line)
	}
	if line["success"] != true {
		t.Errorf("success = %v", line["success"])
	}
}

func TestTimer_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithLevel(LevelInfo)

	logger.StartTimer("parse").StopWithError(errors.New("expected '}'"))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1", len(lines))
	}
	if lines[0]["level"] != "warn" || lines[0]["success"] != false {
		t.Errorf("unexpected failure line: %v", lines[0])
	}
	if lines[0]["error"] != "expected '}'" {
		t.Errorf("error = %v", lines[0]["error"])
	}
}

func TestTimer_BelowLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithLevel(LevelInfo)

	logger.StartTimer("parse").Stop()
	if buf.Len() != 0 {
		t.Errorf("debug timer should be filtered at info: %s", buf.String())
	}
}

func TestTimer_Cancel(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithLevel(LevelTrace)

	timer := logger.StartTimer("parse")
	timer.Cancel()
	timer.Stop()

	if buf.Len() != 0 {
		t.Errorf("cancelled timer should not log: %s", buf.String())
	}
}
