package github

import (
	"fmt"

	"github.com/yskzt/gh-review-threads/internal/models"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	// Control test behavior
	Snapshot     *models.Snapshot
	FetchError   error
	Resolutions  map[string]models.ThreadResolution
	ResolveError error
	FailOnThread string

	// Track method calls
	FetchPullRequestCalled bool
	ResolvedThreadIDs      []string

	// Store call arguments for verification
	LastOwner  string
	LastRepo   string
	LastNumber int
}

// FetchPullRequest mocks the paginated GraphQL fetch
func (m *MockClient) FetchPullRequest(owner, repo string, number int) (*models.Snapshot, error) {
	m.FetchPullRequestCalled = true
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastNumber = number
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	return m.Snapshot, nil
}

// ResolveThread mocks the resolve mutation
func (m *MockClient) ResolveThread(threadID string) (models.ThreadResolution, error) {
	m.ResolvedThreadIDs = append(m.ResolvedThreadIDs, threadID)
	if m.FailOnThread != "" && threadID == m.FailOnThread {
		return models.ThreadResolution{}, m.ResolveError
	}
	if m.ResolveError != nil && m.FailOnThread == "" {
		return models.ThreadResolution{}, m.ResolveError
	}
	if resolution, ok := m.Resolutions[threadID]; ok {
		return resolution, nil
	}
	return models.ThreadResolution{ID: threadID, IsResolved: true}, nil
}

// Reset clears all tracking data for fresh test
func (m *MockClient) Reset() {
	m.FetchPullRequestCalled = false
	m.ResolvedThreadIDs = nil
	m.LastOwner = ""
	m.LastRepo = ""
	m.LastNumber = 0
}

// Helper functions for creating test data

func intPtr(n int) *int {
	return &n
}

// CreateTestThread builds an unresolved thread with a single comment
func CreateTestThread(id, path string, line int, authorLogin, body string) models.ReviewThread {
	return models.ReviewThread{
		ID:       id,
		Path:     path,
		Line:     intPtr(line),
		DiffSide: "RIGHT",
		Comments: []models.Comment{
			{
				ID:        id + "-c1",
				Body:      body,
				CreatedAt: "2024-05-01T10:00:00Z",
				UpdatedAt: "2024-05-01T10:00:00Z",
				Author:    &models.Actor{Login: authorLogin},
			},
		},
	}
}

// CreateTestThreads builds count unresolved single-comment threads
func CreateTestThreads(count int) []models.ReviewThread {
	threads := make([]models.ReviewThread, count)
	for i := 0; i < count; i++ {
		threads[i] = CreateTestThread(
			fmt.Sprintf("RT_%d", i+1),
			fmt.Sprintf("pkg/file%d.go", i+1),
			10*(i+1),
			fmt.Sprintf("reviewer%d", i+1),
			fmt.Sprintf("comment %d", i+1),
		)
	}
	return threads
}

// NewAPIError builds a generic API failure for error-path tests
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}
