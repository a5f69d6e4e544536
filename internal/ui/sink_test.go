package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestEmitOutput_Inline(t *testing.T) {
	var buf bytes.Buffer
	content := "# small report\n- fits inline"

	if err := EmitOutput(&buf, content, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != content+"\n" {
		t.Errorf("expected inline echo, got %q", got)
	}
}

// spillPath extracts the temp file path from the size notice
func spillPath(t *testing.T, notice string) string {
	t.Helper()
	start := strings.Index(notice, "`")
	end := strings.Index(notice[start+1:], "`")
	if start < 0 || end < 0 {
		t.Fatalf("no path in notice: %q", notice)
	}
	return notice[start+1 : start+1+end]
}

func TestEmitOutput_SpillsOnCharBudget(t *testing.T) {
	var buf bytes.Buffer
	content := strings.Repeat("x", maxInlineOutputChars+1)

	if err := EmitOutput(&buf, content, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notice := buf.String()
	if !strings.Contains(notice, "Output is large (12001 chars, 1 lines)") {
		t.Errorf("unexpected notice: %q", notice)
	}
	if strings.Contains(notice, content) {
		t.Error("oversized content must not be printed inline")
	}

	path := spillPath(t, notice)
	defer os.Remove(path)
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("markdown spill should use .md suffix, got %q", path)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read spill file: %v", err)
	}
	if string(written) != content+"\n" {
		t.Errorf("spill file should hold content plus trailing newline, got %d bytes", len(written))
	}
}

func TestEmitOutput_SpillsOnLineBudget(t *testing.T) {
	var buf bytes.Buffer
	content := strings.TrimSuffix(strings.Repeat("line\n", maxInlineOutputLines+1), "\n")

	if err := EmitOutput(&buf, content, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notice := buf.String()
	if !strings.Contains(notice, "Output is large") {
		t.Errorf("expected spill notice, got %q", notice)
	}

	path := spillPath(t, notice)
	defer os.Remove(path)
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("json spill should use .json suffix, got %q", path)
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{name: "empty", content: "", expected: 0},
		{name: "one line no newline", content: "a", expected: 1},
		{name: "one line trailing newline", content: "a\n", expected: 2},
		{name: "three lines", content: "a\nb\nc", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLines(tt.content); got != tt.expected {
				t.Errorf("countLines(%q) = %d, want %d", tt.content, got, tt.expected)
			}
		})
	}
}
