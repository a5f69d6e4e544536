package ui

import (
	"strings"
	"testing"

	"github.com/yskzt/gh-review-threads/internal/models"
	"github.com/yskzt/gh-review-threads/internal/service"
)

var testPR = models.PullRequestMeta{
	Number: 7,
	URL:    "https://github.com/octo/repo/pull/7",
	Title:  "Add retries",
	State:  "OPEN",
	Owner:  "octo",
	Repo:   "repo",
}

func testRow(index int, id, author, body string, outdated bool) models.ActionableRow {
	return models.ActionableRow{
		Index:      index,
		ThreadID:   id,
		Path:       "pkg/client.go",
		Line:       intPtr(42),
		IsOutdated: outdated,
		Author:     author,
		RawBody:    body,
		Severity:   service.ExtractSeverity(body),
	}
}

func TestFormatActionableMarkdown_Empty(t *testing.T) {
	expected := strings.Join([]string{
		"# PR #7: Add retries",
		"",
		"- URL: https://github.com/octo/repo/pull/7",
		"- Actionable threads: 0",
		"",
		"## Actionable Review Threads",
		"- None",
	}, "\n")

	got := FormatActionableMarkdown(testPR, nil, BodyOptions{StripAutoSections: true}, nil)
	if got != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, expected)
	}
}

func TestFormatActionableMarkdown_Rows(t *testing.T) {
	rows := []models.ActionableRow{
		testRow(1, "T1", "alice", "minor: rename this", false),
		testRow(2, "T2", "bob", "please add a test", true),
	}
	botFilters := service.NormalizeBotFilters([]string{"copilot,coderabbit[bot]"})

	got := FormatActionableMarkdown(testPR, rows, BodyOptions{StripAutoSections: true}, botFilters)

	wantLines := []string{
		"- Actionable threads: 2",
		"- Bot filter: coderabbit[bot], copilot",
		"- Includes outdated threads: yes",
		"1. `[T1]` `pkg/client.go:42` - @alice [minor]: \"minor: rename this\"",
		"2. `[T2]` `pkg/client.go:42` - @bob [unknown] [outdated]: \"please add a test\"",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("output missing line %q:\n%s", line, got)
		}
	}
	if strings.Contains(got, "- None") {
		t.Errorf("non-empty list should not render None:\n%s", got)
	}
}

func TestFormatActionableMarkdown_TruncatesBodies(t *testing.T) {
	rows := []models.ActionableRow{
		testRow(1, "T1", "alice", strings.Repeat("long body ", 30), false),
	}
	opts := BodyOptions{MaxChars: intPtr(20), StripAutoSections: true}

	got := FormatActionableMarkdown(testPR, rows, opts, nil)
	if !strings.Contains(got, "\"long body long bo...\"") {
		t.Errorf("expected truncated body in output:\n%s", got)
	}
}

func TestFormatThreadMarkdown(t *testing.T) {
	thread := &models.ReviewThread{
		ID:         "T1",
		IsResolved: false,
		IsOutdated: true,
		Path:       "pkg/client.go",
		Line:       intPtr(42),
		Comments: []models.Comment{
			{
				ID:        "C1",
				Body:      "raw body\nwith newlines preserved",
				CreatedAt: "2024-05-01T10:00:00Z",
				Author:    &models.Actor{Login: "alice"},
			},
			{
				Body: "ghost reply",
			},
		},
	}

	got := FormatThreadMarkdown(testPR, thread)

	wantLines := []string{
		"# PR #7: Add retries",
		"- ID: T1",
		"- Location: pkg/client.go:42",
		"- Resolved: false",
		"- Outdated: true",
		"1. @alice",
		"   - ID: C1",
		"   - Created: 2024-05-01T10:00:00Z",
		"raw body\nwith newlines preserved",
		"2. @unknown",
		"   - ID: <unknown-id>",
		"   - Created: <unknown-time>",
		"```text",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}
}

func TestFormatThreadMarkdown_NoComments(t *testing.T) {
	thread := &models.ReviewThread{ID: "T1", Path: "pkg/client.go"}

	got := FormatThreadMarkdown(testPR, thread)
	if !strings.Contains(got, "- Location: pkg/client.go") {
		t.Errorf("expected bare path location:\n%s", got)
	}
	if !strings.Contains(got, "## Comments\n- None") {
		t.Errorf("expected None placeholder:\n%s", got)
	}
}

func summarySnapshot() *models.Snapshot {
	pending := models.ReviewThread{
		ID:   "T_open",
		Path: "pkg/client.go",
		Line: intPtr(10),
		Comments: []models.Comment{
			{Body: "major: handle the timeout", Author: &models.Actor{Login: "alice"}},
		},
	}
	resolved := models.ReviewThread{
		ID:         "T_done",
		IsResolved: true,
		Path:       "pkg/server.go",
	}
	return &models.Snapshot{
		PullRequest:   testPR,
		ReviewThreads: []models.ReviewThread{pending, resolved},
		ConversationComments: []models.Comment{
			{Body: "ping, any updates?", Author: &models.Actor{Login: "carol"}},
			{Body: "autogenerated status", Author: &models.Actor{Login: "statusbot"}},
		},
		Reviews: []models.Review{
			{State: "APPROVED", Body: "ship it", Author: &models.Actor{Login: "dave"}},
			{State: "COMMENTED", Body: "   ", Author: &models.Actor{Login: "erin"}},
		},
	}
}

func TestFormatHumanSummary(t *testing.T) {
	botFilters := service.NormalizeBotFilters([]string{"statusbot"})

	got := FormatHumanSummary(summarySnapshot(), BodyOptions{StripAutoSections: true}, botFilters, false)

	wantLines := []string{
		"- Open threads to address: 1",
		"- Excluded threads (resolved/outdated): 1",
		"- Bot filter: statusbot",
		"1. `[T_open]` `pkg/client.go:10` - @alice: \"major: handle the timeout\"",
		"## Other Comments",
		"1. conversation - @carol: \"ping, any updates?\"",
		"2. review/APPROVED - @dave: \"ship it\"",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}

	// Empty review bodies and bot-authored comments never surface
	if strings.Contains(got, "statusbot") && strings.Contains(got, "autogenerated status") {
		t.Errorf("bot comment should be filtered:\n%s", got)
	}
	if strings.Contains(got, "review/COMMENTED") {
		t.Errorf("review with blank body should be skipped:\n%s", got)
	}
}

func TestFormatHumanSummary_IncludeOutdatedCounts(t *testing.T) {
	snapshot := summarySnapshot()
	snapshot.ReviewThreads[0].IsOutdated = true

	got := FormatHumanSummary(snapshot, BodyOptions{StripAutoSections: true}, nil, true)
	wantLines := []string{
		"- Open threads to address: 1",
		"- Excluded threads (resolved): 1",
		"- Included outdated threads: 1",
		"`[T_open]` `pkg/client.go:10` [outdated] - @alice:",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}
}

func TestFormatHumanSummary_AllEmpty(t *testing.T) {
	snapshot := &models.Snapshot{PullRequest: testPR}

	got := FormatHumanSummary(snapshot, BodyOptions{StripAutoSections: true}, nil, false)
	if !strings.Contains(got, "## Review Threads\n- None") {
		t.Errorf("expected None under Review Threads:\n%s", got)
	}
	if !strings.Contains(got, "## Other Comments\n- None") {
		t.Errorf("expected None under Other Comments:\n%s", got)
	}
	if strings.Contains(got, "Excluded threads") {
		t.Errorf("zero counts should not be reported:\n%s", got)
	}
}

func TestFormatResolutionStatus(t *testing.T) {
	results := []models.ThreadResolution{
		{ID: "T1", IsResolved: true},
		{ID: "T2", IsResolved: false},
	}
	expected := "Resolved thread T1: isResolved=true\nResolved thread T2: isResolved=false"
	if got := FormatResolutionStatus(results); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestActionableJSONRows(t *testing.T) {
	rows := []models.ActionableRow{
		testRow(1, "T1", "alice", "<!-- marker -->minor: rename   this", false),
	}
	opts := BodyOptions{MaxChars: intPtr(120), StripAutoSections: true}

	jsonRows := ActionableJSONRows(rows, opts)
	if len(jsonRows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(jsonRows))
	}
	row := jsonRows[0]
	if row.Body != "minor: rename this" {
		t.Errorf("expected normalized body, got %q", row.Body)
	}
	if row.Index != 1 || row.ThreadID != "T1" || row.Author != "alice" || row.Severity != "minor" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Line == nil || *row.Line != 42 {
		t.Errorf("expected line 42, got %v", row.Line)
	}
}
