package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/devkit/internal/config"
	"github.com/dshills/devkit/internal/github"
	"github.com/dshills/devkit/internal/output"
	"github.com/dshills/devkit/internal/review"
)

var (
	flagGHOwner  string
	flagGHRepo   string
	flagGHDryRun bool
)

var githubCmd = &cobra.Command{
	Use:   "github <pr-number>",
	Short: "Review a GitHub pull request",
	Long: "Fetch a PR diff from GitHub, review it, print the review and post it as a PR comment. " +
		"Needs GITHUB_TOKEN; GITHUB_API_URL selects a GitHub Enterprise server.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := reporterFor(cmd)
		prNumber, err := strconv.Atoi(args[0])
		if err != nil || prNumber <= 0 {
			r.Error(fmt.Errorf("invalid PR number %q", args[0]))
			exitCode = ExitUsageError
			return nil
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		owner, repo, err := resolveRepo(ctx, flagGHOwner, flagGHRepo)
		if err != nil {
			r.Error(err)
			r.Info("Use --owner and --repo flags to specify manually.")
			exitCode = ExitRuntimeError
			return nil
		}

		client, err := github.NewClient(os.Getenv("GITHUB_TOKEN"), owner, repo, os.Getenv("GITHUB_API_URL"))
		if err != nil {
			exitCode = fail(r, err)
			return nil
		}
		p, err := newPipeline(cfg, r)
		if err != nil {
			exitCode = fail(r, err)
			return nil
		}

		local := &output.Publisher{Format: cfg.Format, Path: flagOut, Stdout: cmd.OutOrStdout()}
		p.Source = &github.PRSource{Client: client, Number: prNumber}
		if flagGHDryRun {
			p.Publisher = local
		} else {
			p.Publisher = publishers{local, &github.PRCommenter{Client: client, Number: prNumber}}
		}

		r.Info("Fetching PR #%d from %s...", prNumber, client.Repo())
		_, err = p.Run(ctx)
		switch {
		case errors.Is(err, review.ErrNoChanges):
			r.Warn("PR has no diff, nothing to review.")
		case err != nil:
			exitCode = fail(r, err)
		case flagGHDryRun:
			r.Info("Dry run: review not posted to GitHub.")
		default:
			r.Success("Review posted to PR #%d.", prNumber)
		}
		return nil
	},
}

func resolveRepo(ctx context.Context, owner, repo string) (string, string, error) {
	if owner != "" && repo != "" {
		return owner, repo, nil
	}
	detectedOwner, detectedRepo, err := github.DetectRepo(ctx, ".")
	if err != nil {
		return "", "", err
	}
	if owner == "" {
		owner = detectedOwner
	}
	if repo == "" {
		repo = detectedRepo
	}
	return owner, repo, nil
}

// publishers delivers a report to each publisher in turn, stopping at the
// first failure.
type publishers []review.Publisher

func (ps publishers) Publish(ctx context.Context, report *review.Report) error {
	for _, p := range ps {
		if err := p.Publish(ctx, report); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	addReviewFlags(githubCmd)
	githubCmd.Flags().StringVar(&flagGHOwner, "owner", "", "GitHub repository owner (auto-detected if omitted)")
	githubCmd.Flags().StringVar(&flagGHRepo, "repo", "", "GitHub repository name (auto-detected if omitted)")
	githubCmd.Flags().BoolVar(&flagGHDryRun, "dry-run", false, "Run review but don't post to GitHub")
}
