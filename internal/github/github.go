package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"regexp"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/dshills/devkit/internal/review"
)

const defaultAPIURL = "https://api.github.com"

// ErrUnauthorized is returned when GitHub rejects the token.
var ErrUnauthorized = errors.New("GitHub authentication failed")

// Client talks to one repository through the GitHub REST API.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// NewClient creates a client for owner/repo. apiURL may be empty for
// github.com or point at a GitHub Enterprise API.
func NewClient(token, owner, repo, apiURL string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: GITHUB_TOKEN environment variable is not set", ErrUnauthorized)
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gh.NewClient(oauth2.NewClient(context.Background(), ts))

	apiURL = strings.TrimRight(apiURL, "/")
	if apiURL != "" && apiURL != defaultAPIURL {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL+"/", apiURL+"/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
	}

	return &Client{gh: client, owner: owner, repo: repo}, nil
}

// Repo returns "owner/repo".
func (c *Client) Repo() string { return c.owner + "/" + c.repo }

// GetPRDiff fetches the unified diff for a pull request.
func (c *Client) GetPRDiff(ctx context.Context, prNumber int) (string, error) {
	diff, resp, err := c.gh.PullRequests.GetRaw(ctx, c.owner, c.repo, prNumber, gh.RawOptions{Type: gh.Diff})
	if err != nil {
		return "", c.apiError(resp, err, fmt.Sprintf("PR #%d not found in %s", prNumber, c.Repo()))
	}
	return diff, nil
}

// CreateComment posts body as a comment on the pull request conversation.
func (c *Client) CreateComment(ctx context.Context, prNumber int, body string) error {
	comment := &gh.IssueComment{Body: gh.String(body)}
	_, resp, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, prNumber, comment)
	if err != nil {
		return c.apiError(resp, err, fmt.Sprintf("PR #%d not found in %s", prNumber, c.Repo()))
	}
	return nil
}

func (c *Client) apiError(resp *gh.Response, err error, notFound string) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return errors.New(notFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("GitHub API: %w", err)
}

// PRSource reviews the diff of a pull request.
type PRSource struct {
	Client *Client
	Number int
}

func (s *PRSource) Name() string { return fmt.Sprintf("pr#%d", s.Number) }

func (s *PRSource) Diff(ctx context.Context) (string, error) {
	return s.Client.GetPRDiff(ctx, s.Number)
}

// PRCommenter publishes a review as a pull request comment.
type PRCommenter struct {
	Client *Client
	Number int
}

func (p *PRCommenter) Publish(ctx context.Context, report *review.Report) error {
	return p.Client.CreateComment(ctx, p.Number, report.Review)
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL of dir.
func DetectRepo(ctx context.Context, dir string) (owner, repo string, err error) {
	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	url := strings.TrimSpace(string(out))
	return ParseRemoteURL(url)
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
