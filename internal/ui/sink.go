package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Inline output budget; anything larger is spilled to a temp file so a
// terminal or calling agent is not flooded.
const (
	maxInlineOutputChars = 12000
	maxInlineOutputLines = 220
)

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

func writeLargeOutput(content, suffix string) (string, error) {
	f, err := os.CreateTemp("", "review_threads_*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return "", fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return f.Name(), nil
}

// EmitOutput prints content inline when it fits the budget, otherwise spills
// it to a temp file and prints the path plus size metadata
func EmitOutput(w io.Writer, content string, jsonOutput bool) error {
	chars := utf8.RuneCountInString(content)
	lineCount := countLines(content)
	if chars <= maxInlineOutputChars && lineCount <= maxInlineOutputLines {
		_, err := fmt.Fprintln(w, content)
		return err
	}

	suffix := ".md"
	if jsonOutput {
		suffix = ".json"
	}
	path, err := writeLargeOutput(content, suffix)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Output is large (%d chars, %d lines). Wrote it to `%s`.\n", chars, lineCount, path)
	fmt.Fprintf(w, "Read the full output from `%s`.\n", path)
	return nil
}
