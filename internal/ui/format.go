package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yskzt/gh-review-threads/internal/models"
	"github.com/yskzt/gh-review-threads/internal/service"
)

// BodyOptions controls how comment bodies are compacted for display
type BodyOptions struct {
	MaxChars          *int
	StripAutoSections bool
}

func (o BodyOptions) normalize(raw string) string {
	return NormalizeBody(raw, o.StripAutoSections, o.MaxChars)
}

func sortedFilters(botFilters map[string]struct{}) []string {
	filters := make([]string, 0, len(botFilters))
	for filter := range botFilters {
		filters = append(filters, filter)
	}
	sort.Strings(filters)
	return filters
}

func prHeader(pr models.PullRequestMeta) []string {
	return []string{
		fmt.Sprintf("# PR #%d: %s", pr.Number, pr.Title),
		"",
		fmt.Sprintf("- URL: %s", pr.URL),
	}
}

// FormatActionableMarkdown renders the actionable work list as one
// enumerated line per row
func FormatActionableMarkdown(pr models.PullRequestMeta, rows []models.ActionableRow, opts BodyOptions, botFilters map[string]struct{}) string {
	lines := prHeader(pr)
	lines = append(lines, fmt.Sprintf("- Actionable threads: %d", len(rows)))
	if len(botFilters) > 0 {
		lines = append(lines, fmt.Sprintf("- Bot filter: %s", strings.Join(sortedFilters(botFilters), ", ")))
	}
	for _, row := range rows {
		if row.IsOutdated {
			lines = append(lines, "- Includes outdated threads: yes")
			break
		}
	}
	lines = append(lines, "", "## Actionable Review Threads")

	if len(rows) == 0 {
		lines = append(lines, "- None")
		return strings.Join(lines, "\n")
	}

	for _, row := range rows {
		outdatedTag := ""
		if row.IsOutdated {
			outdatedTag = " [outdated]"
		}
		lines = append(lines, fmt.Sprintf("%d. `[%s]` `%s` - @%s [%s]%s: \"%s\"",
			row.Index, row.ThreadID, row.Location(), row.Author, row.Severity, outdatedTag, opts.normalize(row.RawBody)))
	}
	return strings.Join(lines, "\n")
}

// FormatThreadMarkdown renders one thread with its full comment history,
// bodies untouched in fenced blocks
func FormatThreadMarkdown(pr models.PullRequestMeta, thread *models.ReviewThread) string {
	lines := []string{
		fmt.Sprintf("# PR #%d: %s", pr.Number, pr.Title),
		"",
		"## Thread",
		fmt.Sprintf("- ID: %s", thread.ID),
		fmt.Sprintf("- Location: %s", thread.Location()),
		fmt.Sprintf("- Resolved: %t", thread.IsResolved),
		fmt.Sprintf("- Outdated: %t", thread.IsOutdated),
		"",
		"## Comments",
	}

	if len(thread.Comments) == 0 {
		lines = append(lines, "- None")
		return strings.Join(lines, "\n")
	}

	for i, comment := range thread.Comments {
		id := comment.ID
		if id == "" {
			id = "<unknown-id>"
		}
		created := comment.CreatedAt
		if created == "" {
			created = "<unknown-time>"
		}
		lines = append(lines,
			fmt.Sprintf("%d. @%s", i+1, comment.AuthorLogin()),
			fmt.Sprintf("   - ID: %s", id),
			fmt.Sprintf("   - Created: %s", created),
			"   - Body:",
			"```text",
			comment.Body,
			"```",
		)
	}
	return strings.Join(lines, "\n")
}

// FormatHumanSummary renders the whole snapshot: pending review threads
// first, then conversation comments and non-empty review bodies under one
// shared running index
func FormatHumanSummary(snapshot *models.Snapshot, opts BodyOptions, botFilters map[string]struct{}, includeOutdated bool) string {
	pr := snapshot.PullRequest
	pending := service.PendingThreads(snapshot.ReviewThreads, botFilters, includeOutdated)

	resolvedCount := 0
	outdatedCount := 0
	for _, thread := range snapshot.ReviewThreads {
		if thread.IsResolved {
			resolvedCount++
		}
		if thread.IsOutdated {
			outdatedCount++
		}
	}

	lines := prHeader(pr)
	lines = append(lines, fmt.Sprintf("- Open threads to address: %d", len(pending)))
	if includeOutdated {
		if resolvedCount > 0 {
			lines = append(lines, fmt.Sprintf("- Excluded threads (resolved): %d", resolvedCount))
		}
		if outdatedCount > 0 {
			lines = append(lines, fmt.Sprintf("- Included outdated threads: %d", outdatedCount))
		}
	} else if excluded := len(snapshot.ReviewThreads) - len(pending); excluded > 0 {
		lines = append(lines, fmt.Sprintf("- Excluded threads (resolved/outdated): %d", excluded))
	}
	if len(botFilters) > 0 {
		lines = append(lines, fmt.Sprintf("- Bot filter: %s", strings.Join(sortedFilters(botFilters), ", ")))
	}
	lines = append(lines, "", "## Review Threads")

	if len(pending) == 0 {
		lines = append(lines, "- None")
	} else {
		for i, thread := range pending {
			latest := thread.LatestComment()
			outdatedTag := ""
			if thread.IsOutdated {
				outdatedTag = " [outdated]"
			}
			lines = append(lines, fmt.Sprintf("%d. `[%s]` `%s`%s - @%s: \"%s\"",
				i+1, thread.ID, thread.Location(), outdatedTag, latest.AuthorLogin(), opts.normalize(latest.Body)))
		}
	}

	lines = append(lines, "", "## Other Comments")
	otherCount := 0
	for _, comment := range snapshot.ConversationComments {
		if _, filtered := botFilters[strings.ToLower(comment.AuthorLogin())]; filtered {
			continue
		}
		otherCount++
		lines = append(lines, fmt.Sprintf("%d. conversation - @%s: \"%s\"",
			otherCount, comment.AuthorLogin(), opts.normalize(comment.Body)))
	}
	for _, review := range snapshot.Reviews {
		if strings.TrimSpace(review.Body) == "" {
			continue
		}
		if _, filtered := botFilters[strings.ToLower(review.AuthorLogin())]; filtered {
			continue
		}
		otherCount++
		state := review.State
		if state == "" {
			state = "UNKNOWN"
		}
		lines = append(lines, fmt.Sprintf("%d. review/%s - @%s: \"%s\"",
			otherCount, state, review.AuthorLogin(), opts.normalize(review.Body)))
	}
	if otherCount == 0 {
		lines = append(lines, "- None")
	}

	return strings.Join(lines, "\n")
}

// FormatResolutionStatus renders one status line per resolved thread
func FormatResolutionStatus(results []models.ThreadResolution) string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		lines = append(lines, fmt.Sprintf("Resolved thread %s: isResolved=%t", result.ID, result.IsResolved))
	}
	return strings.Join(lines, "\n")
}

// ActionableJSONRow is the machine-consumable projection of an actionable
// row, body normalized
type ActionableJSONRow struct {
	Index    int    `json:"index"`
	ThreadID string `json:"thread_id"`
	Path     string `json:"path"`
	Line     *int   `json:"line"`
	Author   string `json:"author"`
	Body     string `json:"body"`
	Severity string `json:"severity"`
}

// ActionableJSONRows projects actionable rows for JSON output
func ActionableJSONRows(rows []models.ActionableRow, opts BodyOptions) []ActionableJSONRow {
	jsonRows := make([]ActionableJSONRow, 0, len(rows))
	for _, row := range rows {
		jsonRows = append(jsonRows, ActionableJSONRow{
			Index:    row.Index,
			ThreadID: row.ThreadID,
			Path:     row.Path,
			Line:     row.Line,
			Author:   row.Author,
			Body:     opts.normalize(row.RawBody),
			Severity: row.Severity,
		})
	}
	return jsonRows
}

// RenderJSON marshals any value with two-space indentation
func RenderJSON(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return string(out), nil
}
