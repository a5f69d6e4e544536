package ui

import (
	"regexp"
	"strings"
)

var (
	htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	detailsPattern     = regexp.MustCompile(`(?is)<details>.*?</details>`)
)

// StripAutoSections drops bulky auto-generated blocks (HTML comments and
// collapsible <details> sections) that bot reviewers attach to comments,
// keeping the lead content
func StripAutoSections(value string) string {
	noComments := htmlCommentPattern.ReplaceAllString(value, " ")
	return detailsPattern.ReplaceAllString(noComments, " ")
}

// CollapseWhitespace squashes every whitespace run, newlines included, to a
// single space and trims the ends
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// TruncateText cuts value to maxChars runes, appending "..." inside the
// budget when it is larger than 3. A nil budget disables truncation.
func TruncateText(value string, maxChars *int) string {
	if maxChars == nil {
		return value
	}
	runes := []rune(value)
	if len(runes) <= *maxChars {
		return value
	}
	if *maxChars <= 3 {
		return string(runes[:*maxChars])
	}
	return string(runes[:*maxChars-3]) + "..."
}

// NormalizeBody prepares a raw comment body for compact display: strip
// auto-generated sections, collapse whitespace, truncate. If stripping eats
// the entire body of a non-empty comment, the raw body is collapsed instead
// so short legitimate comments survive.
func NormalizeBody(raw string, stripAutoSections bool, maxChars *int) string {
	source := raw
	if stripAutoSections {
		source = StripAutoSections(raw)
	}
	normalized := CollapseWhitespace(source)
	if normalized == "" {
		normalized = CollapseWhitespace(raw)
	}
	return TruncateText(normalized, maxChars)
}
