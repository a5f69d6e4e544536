package models

import "strconv"

// PullRequestMeta represents PR metadata, captured once from the first
// fetched page
type PullRequestMeta struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
}

// Actor represents a GitHub user reference. Comments from deleted accounts
// carry no actor at all.
type Actor struct {
	Login string `json:"login"`
}

// Comment represents a single comment, either a top-level conversation
// comment or one entry of a review thread
type Comment struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Author    *Actor `json:"author"`
}

// AuthorLogin returns the comment author's login, or "unknown" when absent
func (c Comment) AuthorLogin() string {
	if c.Author != nil && c.Author.Login != "" {
		return c.Author.Login
	}
	return "unknown"
}

// Review represents a review submission (APPROVED, CHANGES_REQUESTED, ...)
type Review struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	Body        string `json:"body"`
	SubmittedAt string `json:"submittedAt"`
	Author      *Actor `json:"author"`
}

// AuthorLogin returns the review author's login, or "unknown" when absent
func (r Review) AuthorLogin() string {
	if r.Author != nil && r.Author.Login != "" {
		return r.Author.Login
	}
	return "unknown"
}

// ReviewThread represents an inline review thread anchored to a file
// location. Comments are ordered by creation time.
type ReviewThread struct {
	ID                string    `json:"id"`
	IsResolved        bool      `json:"isResolved"`
	IsOutdated        bool      `json:"isOutdated"`
	Path              string    `json:"path"`
	Line              *int      `json:"line"`
	DiffSide          string    `json:"diffSide"`
	StartLine         *int      `json:"startLine"`
	StartDiffSide     string    `json:"startDiffSide"`
	OriginalLine      *int      `json:"originalLine"`
	OriginalStartLine *int      `json:"originalStartLine"`
	ResolvedBy        *Actor    `json:"resolvedBy"`
	Comments          []Comment `json:"comments"`
}

// LatestComment returns the last comment of the thread, or a zero Comment
// when the thread has none
func (t ReviewThread) LatestComment() Comment {
	if len(t.Comments) == 0 {
		return Comment{}
	}
	return t.Comments[len(t.Comments)-1]
}

// Location renders "path:line", or the bare path when no line is attached
func (t ReviewThread) Location() string {
	path := t.Path
	if path == "" {
		path = "<unknown-path>"
	}
	if t.Line == nil {
		return path
	}
	return path + ":" + strconv.Itoa(*t.Line)
}

// Snapshot is the complete aggregation of a PR's review discussion
type Snapshot struct {
	PullRequest          PullRequestMeta `json:"pull_request"`
	ConversationComments []Comment       `json:"conversation_comments"`
	Reviews              []Review        `json:"reviews"`
	ReviewThreads        []ReviewThread  `json:"review_threads"`
}

// ActionableRow is one entry of the derived work list: an unresolved thread
// that survived the outdated and bot filters, with a dense 1-based index.
// Thread is a non-owning back-reference for presenters that need the full
// comment history.
type ActionableRow struct {
	Index      int           `json:"index"`
	ThreadID   string        `json:"thread_id"`
	Path       string        `json:"path"`
	Line       *int          `json:"line"`
	IsOutdated bool          `json:"is_outdated"`
	Author     string        `json:"author"`
	RawBody    string        `json:"raw_body"`
	Severity   string        `json:"severity"`
	Thread     *ReviewThread `json:"-"`
}

// Location renders the row's "path:line" anchor
func (r ActionableRow) Location() string {
	if r.Line == nil {
		return r.Path
	}
	return r.Path + ":" + strconv.Itoa(*r.Line)
}

// ThreadResolution is the mutation result for one resolved thread
type ThreadResolution struct {
	ID         string `json:"id"`
	IsResolved bool   `json:"isResolved"`
}
