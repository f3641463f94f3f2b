package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoPullRequest is returned when the workflow event is not a pull request.
var ErrNoPullRequest = errors.New("No Pull Request found in context. Are you running this on push?")

// ActionsContext is what a GitHub Actions run tells us about the pull request.
type ActionsContext struct {
	Owner    string
	Repo     string
	PRNumber int
	Token    string
	APIURL   string
}

type actionsEvent struct {
	PullRequest *struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// ActionsContextFromEnv reads GITHUB_EVENT_PATH, GITHUB_REPOSITORY,
// GITHUB_TOKEN and GITHUB_API_URL through getenv.
func ActionsContextFromEnv(getenv func(string) string) (ActionsContext, error) {
	ac := ActionsContext{
		Token:  getenv("GITHUB_TOKEN"),
		APIURL: getenv("GITHUB_API_URL"),
	}

	if full := getenv("GITHUB_REPOSITORY"); full != "" {
		owner, repo, ok := strings.Cut(full, "/")
		if !ok || owner == "" || repo == "" {
			return ac, fmt.Errorf("invalid GITHUB_REPOSITORY %q", full)
		}
		ac.Owner, ac.Repo = owner, repo
	}

	path := getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return ac, ErrNoPullRequest
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ac, fmt.Errorf("reading workflow event: %w", err)
	}
	var ev actionsEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return ac, fmt.Errorf("parsing workflow event: %w", err)
	}
	if ev.PullRequest == nil || ev.PullRequest.Number == 0 {
		return ac, ErrNoPullRequest
	}
	ac.PRNumber = ev.PullRequest.Number
	return ac, nil
}
