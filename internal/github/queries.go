package github

import "strings"

// Selection sets for the three independently paginated collections of a
// pull request. Each one carries its own cursor variable so the fetch loop
// can keep paginating one collection after the others are exhausted.
const commentsSelection = `
      comments(first: 100, after: $commentsCursor) {
        pageInfo { hasNextPage endCursor }
        nodes {
          id
          body
          createdAt
          updatedAt
          author { login }
        }
      }`

const reviewsSelection = `
      reviews(first: 100, after: $reviewsCursor) {
        pageInfo { hasNextPage endCursor }
        nodes {
          id
          state
          body
          submittedAt
          author { login }
        }
      }`

const reviewThreadsSelection = `
      reviewThreads(first: 100, after: $threadsCursor) {
        pageInfo { hasNextPage endCursor }
        nodes {
          id
          isResolved
          isOutdated
          path
          line
          diffSide
          startLine
          startDiffSide
          originalLine
          originalStartLine
          resolvedBy { login }
          comments(first: 100) {
            nodes {
              id
              body
              createdAt
              updatedAt
              author { login }
            }
          }
        }
      }`

const resolveThreadMutation = `
mutation($threadId: ID!) {
  resolveReviewThread(input: {threadId: $threadId}) {
    thread {
      id
      isResolved
    }
  }
}`

// buildPullRequestQuery assembles the fetch query from the collections that
// still have pages. An exhausted collection is left out of the document
// entirely, so the server never sees a stale or null cursor for it.
func buildPullRequestQuery(includeComments, includeReviews, includeThreads bool) string {
	declarations := []string{
		"$owner: String!",
		"$repo: String!",
		"$number: Int!",
	}
	var selections []string
	if includeComments {
		declarations = append(declarations, "$commentsCursor: String")
		selections = append(selections, commentsSelection)
	}
	if includeReviews {
		declarations = append(declarations, "$reviewsCursor: String")
		selections = append(selections, reviewsSelection)
	}
	if includeThreads {
		declarations = append(declarations, "$threadsCursor: String")
		selections = append(selections, reviewThreadsSelection)
	}

	var b strings.Builder
	b.WriteString("query(" + strings.Join(declarations, ", ") + ") {\n")
	b.WriteString("  repository(owner: $owner, name: $repo) {\n")
	b.WriteString("    pullRequest(number: $number) {\n")
	b.WriteString("      number\n")
	b.WriteString("      url\n")
	b.WriteString("      title\n")
	b.WriteString("      state\n")
	for _, selection := range selections {
		b.WriteString(selection)
		b.WriteString("\n")
	}
	b.WriteString("    }\n  }\n}")
	return b.String()
}
