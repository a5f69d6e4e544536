package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yskzt/gh-review-threads/internal/github"
	"github.com/yskzt/gh-review-threads/internal/models"
)

// Severity keywords are matched case-insensitively as whole words, first
// occurrence in the text wins. Delimiters are spelled out because Go's
// regexp has no lookbehind; a keyword counts only when not glued to another
// letter on either side, so "nit:" never matches "nitpick".
var severityPattern = regexp.MustCompile(`(?i)(?:^|[^a-zA-Z])(critical|major|minor|nitpick)(?:[^a-zA-Z]|$)`)

// ExtractSeverity pulls a best-effort priority keyword out of a comment body
func ExtractSeverity(text string) string {
	match := severityPattern.FindStringSubmatch(text)
	if match == nil {
		return "unknown"
	}
	return strings.ToLower(match[1])
}

// NormalizeBotFilters splits raw --bot-filter values on commas and lowercases
// each login, so both repeated flags and comma-joined lists work
func NormalizeBotFilters(values []string) map[string]struct{} {
	filters := make(map[string]struct{})
	for _, value := range values {
		for _, token := range strings.Split(value, ",") {
			login := strings.ToLower(strings.TrimSpace(token))
			if login != "" {
				filters[login] = struct{}{}
			}
		}
	}
	return filters
}

// PendingThreads returns the threads still requiring attention: unresolved,
// outdated only when includeOutdated is set, and whose latest comment is not
// authored by a filtered bot. Both the actionable list and the human summary
// go through this one filter so they can never drift apart.
func PendingThreads(threads []models.ReviewThread, botFilters map[string]struct{}, includeOutdated bool) []*models.ReviewThread {
	var pending []*models.ReviewThread
	for i := range threads {
		thread := &threads[i]
		if thread.IsResolved {
			continue
		}
		if thread.IsOutdated && !includeOutdated {
			continue
		}
		author := thread.LatestComment().AuthorLogin()
		if _, filtered := botFilters[strings.ToLower(author)]; filtered {
			continue
		}
		pending = append(pending, thread)
	}
	return pending
}

// BuildActionableRows derives the actionable work list from the raw threads.
// Indexes are dense and 1-based over surviving threads only.
func BuildActionableRows(threads []models.ReviewThread, botFilters map[string]struct{}, includeOutdated bool) []models.ActionableRow {
	pending := PendingThreads(threads, botFilters, includeOutdated)
	rows := make([]models.ActionableRow, 0, len(pending))
	for _, thread := range pending {
		latest := thread.LatestComment()
		path := thread.Path
		if path == "" {
			path = "<unknown-path>"
		}
		rows = append(rows, models.ActionableRow{
			Index:      len(rows) + 1,
			ThreadID:   thread.ID,
			Path:       path,
			Line:       thread.Line,
			IsOutdated: thread.IsOutdated,
			Author:     latest.AuthorLogin(),
			RawBody:    latest.Body,
			Severity:   ExtractSeverity(latest.Body),
			Thread:     thread,
		})
	}
	return rows
}

// FindThread looks up a thread by id in a fetched snapshot
func FindThread(threads []models.ReviewThread, threadID string) (*models.ReviewThread, error) {
	for i := range threads {
		if threads[i].ID == threadID {
			return &threads[i], nil
		}
	}
	return nil, fmt.Errorf("thread not found: %s", threadID)
}

// ThreadIDsForIndexes maps 1-based actionable indexes to thread ids.
// Duplicate indexes collapse to one resolution, preserving first-seen order.
func ThreadIDsForIndexes(rows []models.ActionableRow, indexes []int) ([]string, error) {
	byIndex := make(map[int]string, len(rows))
	for _, row := range rows {
		byIndex[row.Index] = row.ThreadID
	}

	var threadIDs []string
	seen := make(map[string]struct{})
	for _, index := range indexes {
		threadID, ok := byIndex[index]
		if !ok {
			return nil, fmt.Errorf("invalid index %d; valid range is 1..%d", index, len(rows))
		}
		if _, dup := seen[threadID]; dup {
			continue
		}
		seen[threadID] = struct{}{}
		threadIDs = append(threadIDs, threadID)
	}
	return threadIDs, nil
}

// ReviewService contains the business logic
type ReviewService struct {
	client github.GitHubClient
}

// NewReviewService creates a new service instance
func NewReviewService(client github.GitHubClient) *ReviewService {
	return &ReviewService{client: client}
}

// FetchSnapshot fetches the complete review discussion for one PR
func (s *ReviewService) FetchSnapshot(owner, repo string, number int) (*models.Snapshot, error) {
	return s.client.FetchPullRequest(owner, repo, number)
}

// ResolveThreads resolves the given threads one at a time, in order. The
// first failure aborts the remainder; resolutions already applied stand.
func (s *ReviewService) ResolveThreads(threadIDs []string) ([]models.ThreadResolution, error) {
	results := make([]models.ThreadResolution, 0, len(threadIDs))
	for _, threadID := range threadIDs {
		resolution, err := s.client.ResolveThread(threadID)
		if err != nil {
			return nil, err
		}
		results = append(results, resolution)
	}
	return results, nil
}
