package github

import (
	"github.com/yskzt/gh-review-threads/internal/models"
)

// GitHubClient defines the interface for GitHub operations
type GitHubClient interface {
	FetchPullRequest(owner, repo string, number int) (*models.Snapshot, error)
	ResolveThread(threadID string) (models.ThreadResolution, error)
}

// Ensure Client implements GitHubClient interface
var _ GitHubClient = (*Client)(nil)
