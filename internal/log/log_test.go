// ABOUTME: Tests for the leveled logging package
// ABOUTME: Validates level filtering, level parsing, and output redirection

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// capture redirects output to a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	savedLevel := GetLevel()
	t.Cleanup(func() {
		SetOutput(prev)
		SetLevel(savedLevel)
	})
	return &buf
}

func TestSetLevel(t *testing.T) {
	savedLevel := GetLevel()
	defer SetLevel(savedLevel)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}

	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("expected LevelError, got %v", GetLevel())
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelInfo)

	Debug("this should be suppressed: %s", "test")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarnEmittedWithPrefix(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelInfo)

	Warn("mode capture failed: %d", 42)

	if got, want := buf.String(), "[WARN] mode capture failed: 42\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestAllLevels(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelDebug)

	Debug("debug: %d", 1)
	Info("info: %d", 2)
	Warn("warn: %d", 3)
	Error("error: %d", 4)

	out := buf.String()
	for _, want := range []string{"[DEBUG] debug: 1", "[INFO] info: 2", "[WARN] warn: 3", "[ERROR] error: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelError + 4)

	Warn("hidden")
	Error("shown")

	if got := buf.String(); got != "[ERROR] shown\n" {
		t.Errorf("output = %q, want only the error line", got)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: " warn ", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
