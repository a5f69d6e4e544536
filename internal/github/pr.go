package github

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2"
	"github.com/cli/go-gh/v2/pkg/repository"
)

// CurrentPullRequest resolves the PR associated with the current branch,
// whatever gh considers associated. Reads the head repository owner/name so
// cross-repo PRs work too.
func CurrentPullRequest() (owner, repo string, number int, err error) {
	stdout, stderr, err := gh.Exec("pr", "view", "--json", "number,headRepositoryOwner,headRepository")
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to resolve the current pull request: %w\n%s", err, strings.TrimSpace(stderr.String()))
	}

	var view struct {
		Number              int `json:"number"`
		HeadRepositoryOwner struct {
			Login string `json:"login"`
		} `json:"headRepositoryOwner"`
		HeadRepository struct {
			Name string `json:"name"`
		} `json:"headRepository"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &view); err != nil {
		return "", "", 0, fmt.Errorf("failed to parse gh pr view output: %w", err)
	}
	return view.HeadRepositoryOwner.Login, view.HeadRepository.Name, view.Number, nil
}

// ResolveTarget turns the optional -R/--number overrides into a concrete
// (owner, repo, number) triple, falling back to the current branch's PR
func ResolveTarget(repoOverride string, number int) (string, string, int, error) {
	if repoOverride != "" {
		if number <= 0 {
			return "", "", 0, fmt.Errorf("--number is required when --repo is set")
		}
		repo, err := repository.Parse(repoOverride)
		if err != nil {
			return "", "", 0, fmt.Errorf("invalid repository %q: %w", repoOverride, err)
		}
		return repo.Owner, repo.Name, number, nil
	}

	if number > 0 {
		repo, err := repository.Current()
		if err != nil {
			return "", "", 0, fmt.Errorf("failed to get current repository: %w", err)
		}
		return repo.Owner, repo.Name, number, nil
	}

	return CurrentPullRequest()
}
