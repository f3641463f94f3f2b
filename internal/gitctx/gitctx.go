package gitctx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta(ctx context.Context, dir string) (RepoMeta, error) {
	root, err := gitOutput(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// Staged returns the diff of index vs HEAD.
func Staged(ctx context.Context, dir string) (string, error) {
	diff, err := gitOutput(ctx, dir, "diff", "--staged")
	if err != nil {
		return "", fmt.Errorf("git diff --staged: %w", err)
	}
	return diff, nil
}

// Unstaged returns the diff of working tree vs index.
func Unstaged(ctx context.Context, dir string) (string, error) {
	diff, err := gitOutput(ctx, dir, "diff")
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return diff, nil
}

// GitDir returns the repository's .git directory as an absolute path.
func GitDir(ctx context.Context, dir string) (string, error) {
	out, err := gitOutput(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// LocalSource reads changes from the repository in Dir. It reviews staged
// changes unless Unstaged is set.
type LocalSource struct {
	Dir      string
	Unstaged bool
}

func (s LocalSource) Name() string {
	if s.Unstaged {
		return "unstaged"
	}
	return "staged"
}

func (s LocalSource) Diff(ctx context.Context) (string, error) {
	if s.Unstaged {
		return Unstaged(ctx, s.Dir)
	}
	return Staged(ctx, s.Dir)
}

// ChangedFiles lists the b/ paths named in a unified diff, in order.
func ChangedFiles(diff string) []string {
	seen := make(map[string]bool)
	var files []string
	for _, line := range strings.Split(diff, "\n") {
		if !strings.HasPrefix(line, "+++ b/") {
			continue
		}
		path := strings.TrimPrefix(line, "+++ b/")
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	return files
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
