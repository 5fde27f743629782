package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func withSink(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetSink(&buf)
	t.Cleanup(func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	})
	return &buf
}

func TestSetLevel_FiltersMessages(t *testing.T) {
	buf := withSink(t)
	logger := New("test")

	SetLevel(Notice)
	logger.Info("hidden message")
	logger.Notice("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("Expected info message to be filtered at notice level, got %q", out)
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("Expected notice message in output, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}
}

func TestSetLevel_Debug(t *testing.T) {
	buf := withSink(t)
	logger := New("test")

	SetLevel(Debug)
	logger.Debugf("value=%d", 42)

	if !strings.Contains(buf.String(), "value=42") {
		t.Errorf("Expected debug message at debug level, got %q", buf.String())
	}
}

func TestAsPrintf(t *testing.T) {
	buf := withSink(t)
	SetLevel(Info)

	AsPrintf(New("render")).Printf("Rendering %dx%d\n", 4, 3)

	out := buf.String()
	if !strings.Contains(out, "Rendering 4x3") {
		t.Errorf("Expected forwarded message, got %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Expected trailing newline to be trimmed to a single line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{"", Notice, false},
		{"warn", Warning, false},
		{"error", Error, false},
		{"loud", Notice, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, level, tt.expected)
			}
		})
	}
}
