package github

import (
	"fmt"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"
	"github.com/yskzt/gh-review-threads/internal/models"
)

// gqlDoer is the raw-query surface of go-gh's GraphQL client
type gqlDoer interface {
	Do(query string, variables map[string]interface{}, response interface{}) error
}

// Client wraps the GitHub GraphQL API
type Client struct {
	gql gqlDoer
}

func NewClient() (*Client, error) {
	gqlClient, err := api.DefaultGraphQLClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return &Client{gql: gqlClient}, nil
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type commentConnection struct {
	PageInfo pageInfo         `json:"pageInfo"`
	Nodes    []models.Comment `json:"nodes"`
}

type reviewConnection struct {
	PageInfo pageInfo        `json:"pageInfo"`
	Nodes    []models.Review `json:"nodes"`
}

type threadConnection struct {
	PageInfo pageInfo           `json:"pageInfo"`
	Nodes    []reviewThreadNode `json:"nodes"`
}

// reviewThreadNode is the wire shape of a review thread; the nested comment
// connection is flattened into models.ReviewThread.Comments
type reviewThreadNode struct {
	ID                string        `json:"id"`
	IsResolved        bool          `json:"isResolved"`
	IsOutdated        bool          `json:"isOutdated"`
	Path              string        `json:"path"`
	Line              *int          `json:"line"`
	DiffSide          string        `json:"diffSide"`
	StartLine         *int          `json:"startLine"`
	StartDiffSide     string        `json:"startDiffSide"`
	OriginalLine      *int          `json:"originalLine"`
	OriginalStartLine *int          `json:"originalStartLine"`
	ResolvedBy        *models.Actor `json:"resolvedBy"`
	Comments          struct {
		Nodes []models.Comment `json:"nodes"`
	} `json:"comments"`
}

func (n reviewThreadNode) toModel() models.ReviewThread {
	return models.ReviewThread{
		ID:                n.ID,
		IsResolved:        n.IsResolved,
		IsOutdated:        n.IsOutdated,
		Path:              n.Path,
		Line:              n.Line,
		DiffSide:          n.DiffSide,
		StartLine:         n.StartLine,
		StartDiffSide:     n.StartDiffSide,
		OriginalLine:      n.OriginalLine,
		OriginalStartLine: n.OriginalStartLine,
		ResolvedBy:        n.ResolvedBy,
		Comments:          n.Comments.Nodes,
	}
}

type pullRequestQueryResponse struct {
	Repository struct {
		PullRequest struct {
			Number        int                `json:"number"`
			URL           string             `json:"url"`
			Title         string             `json:"title"`
			State         string             `json:"state"`
			Comments      *commentConnection `json:"comments"`
			Reviews       *reviewConnection  `json:"reviews"`
			ReviewThreads *threadConnection  `json:"reviewThreads"`
		} `json:"pullRequest"`
	} `json:"repository"`
}

// collectionState tracks one paginated collection across fetch rounds.
// Invariant: the collection appears in a request iff not exhausted.
type collectionState struct {
	cursor    *string
	exhausted bool
}

func (s *collectionState) advance(pi pageInfo) {
	if pi.HasNextPage {
		cursor := pi.EndCursor
		s.cursor = &cursor
		return
	}
	s.cursor = nil
	s.exhausted = true
}

// FetchPullRequest fetches the complete review discussion of one pull
// request, paginating conversation comments, reviews, and review threads
// independently until every collection is exhausted. PR metadata is taken
// from the first page only. Any GraphQL error aborts the fetch; no partial
// snapshot is returned.
func (c *Client) FetchPullRequest(owner, repo string, number int) (*models.Snapshot, error) {
	var comments, reviews, threads collectionState

	// Collections start as empty slices so JSON output renders [] for a
	// PR with no discussion
	snapshot := &models.Snapshot{
		ConversationComments: []models.Comment{},
		Reviews:              []models.Review{},
		ReviewThreads:        []models.ReviewThread{},
	}
	metaCaptured := false

	for {
		query := buildPullRequestQuery(!comments.exhausted, !reviews.exhausted, !threads.exhausted)
		variables := map[string]interface{}{
			"owner":  graphql.String(owner),
			"repo":   graphql.String(repo),
			"number": graphql.Int(number),
		}
		if !comments.exhausted && comments.cursor != nil {
			variables["commentsCursor"] = graphql.String(*comments.cursor)
		}
		if !reviews.exhausted && reviews.cursor != nil {
			variables["reviewsCursor"] = graphql.String(*reviews.cursor)
		}
		if !threads.exhausted && threads.cursor != nil {
			variables["threadsCursor"] = graphql.String(*threads.cursor)
		}

		var resp pullRequestQueryResponse
		if err := c.gql.Do(query, variables, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch pull request %s/%s#%d: %w", owner, repo, number, err)
		}

		pr := resp.Repository.PullRequest
		if !metaCaptured {
			snapshot.PullRequest = models.PullRequestMeta{
				Number: pr.Number,
				URL:    pr.URL,
				Title:  pr.Title,
				State:  pr.State,
				Owner:  owner,
				Repo:   repo,
			}
			metaCaptured = true
		}

		if pr.Comments != nil {
			snapshot.ConversationComments = append(snapshot.ConversationComments, pr.Comments.Nodes...)
			comments.advance(pr.Comments.PageInfo)
		}
		if pr.Reviews != nil {
			snapshot.Reviews = append(snapshot.Reviews, pr.Reviews.Nodes...)
			reviews.advance(pr.Reviews.PageInfo)
		}
		if pr.ReviewThreads != nil {
			for _, node := range pr.ReviewThreads.Nodes {
				snapshot.ReviewThreads = append(snapshot.ReviewThreads, node.toModel())
			}
			threads.advance(pr.ReviewThreads.PageInfo)
		}

		if comments.exhausted && reviews.exhausted && threads.exhausted {
			break
		}
	}

	return snapshot, nil
}

// ResolveThread marks one review thread resolved and reports its new state
func (c *Client) ResolveThread(threadID string) (models.ThreadResolution, error) {
	variables := map[string]interface{}{
		"threadId": graphql.ID(threadID),
	}

	var resp struct {
		ResolveReviewThread struct {
			Thread models.ThreadResolution `json:"thread"`
		} `json:"resolveReviewThread"`
	}
	if err := c.gql.Do(resolveThreadMutation, variables, &resp); err != nil {
		return models.ThreadResolution{}, fmt.Errorf("failed to resolve thread %s: %w", threadID, err)
	}
	return resp.ResolveReviewThread.Thread, nil
}
