package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/devkit/internal/cache"
	"github.com/dshills/devkit/internal/config"
	"github.com/dshills/devkit/internal/gitctx"
	"github.com/dshills/devkit/internal/github"
	"github.com/dshills/devkit/internal/output"
	"github.com/dshills/devkit/internal/providers"
	"github.com/dshills/devkit/internal/review"
	"github.com/dshills/devkit/internal/ui"
)

// Shared review flags
var (
	flagProvider string
	flagModel    string
	flagFormat   string
	flagOut      string
	flagNoRedact bool
	flagUnstaged bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, zai, ollama, lmstudio)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name (default AI_MODEL or glm-4.6v-flash)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, markdown, json, html)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:     "review",
	Aliases: []string{"r"},
	Short:   "Review staged changes using AI",
	Long: "Review staged changes with an LLM and print the review. When CI is set the " +
		"pull request of the current GitHub Actions run is reviewed instead and the " +
		"review is posted as a PR comment.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		r := reporterFor(cmd)
		if os.Getenv("CI") != "" {
			exitCode = runCIReview(cmd.Context(), cfg, r, os.Getenv)
		} else {
			exitCode = runLocalReview(cmd.Context(), cfg, r, cmd.OutOrStdout())
		}
		return nil
	},
}

// newPipeline builds a pipeline with the provider, cache and options from
// cfg. Source and Publisher are left to the caller.
func newPipeline(cfg config.Config, r *ui.Reporter) (*review.Pipeline, error) {
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		r.Warn("WARNING: secret redaction is disabled")
	}

	reviewer, err := providers.New(providers.Settings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
	})
	if err != nil {
		return nil, err
	}

	p := &review.Pipeline{
		Reviewer: reviewer,
		Reporter: r,
		Version:  version,
		Options: review.Options{
			Model:        cfg.Model,
			MaxDiffChars: cfg.Review.MaxDiffChars,
			Redact:       cfg.Privacy.RedactSecrets,
			RedactPaths:  cfg.Privacy.RedactPaths,
		},
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		r.Warn("Review cache unavailable: %v", err)
	} else {
		p.Cache = c
	}
	return p, nil
}

func runLocalReview(ctx context.Context, cfg config.Config, r *ui.Reporter, stdout io.Writer) int {
	r.Info("💻 Running in Local Mode...")
	p, err := newPipeline(cfg, r)
	if err != nil {
		return fail(r, err)
	}

	if meta, err := gitctx.GetRepoMeta(ctx, "."); err == nil {
		p.Repo = review.RepoInfo{Root: meta.Root, Head: meta.Head, Branch: meta.Branch}
	}
	p.Source = gitctx.LocalSource{Dir: ".", Unstaged: flagUnstaged}
	p.Publisher = &output.Publisher{Format: cfg.Format, Path: flagOut, Stdout: stdout}

	_, err = p.Run(ctx)
	if errors.Is(err, review.ErrNoChanges) {
		if flagUnstaged {
			r.Warn("⚠️ No unstaged changes found.")
		} else {
			r.Warn("⚠️ No staged changes found. Did you run 'git add'?")
		}
		return ExitSuccess
	}
	if err != nil {
		return fail(r, err)
	}
	if flagOut != "" {
		r.Success("Review written to %s", flagOut)
	}
	return ExitSuccess
}

func runCIReview(ctx context.Context, cfg config.Config, r *ui.Reporter, getenv func(string) string) int {
	r.Info("☁️ Running in GitHub Actions Mode...")
	ac, err := github.ActionsContextFromEnv(getenv)
	if err != nil {
		return fail(r, err)
	}
	client, err := github.NewClient(ac.Token, ac.Owner, ac.Repo, ac.APIURL)
	if err != nil {
		return fail(r, err)
	}
	p, err := newPipeline(cfg, r)
	if err != nil {
		return fail(r, err)
	}
	p.Source = &github.PRSource{Client: client, Number: ac.PRNumber}
	p.Publisher = &github.PRCommenter{Client: client, Number: ac.PRNumber}

	_, err = p.Run(ctx)
	if errors.Is(err, review.ErrNoChanges) {
		r.Warn("⚠️ Pull request #%d has no changes to review.", ac.PRNumber)
		return ExitSuccess
	}
	if err != nil {
		return fail(r, err)
	}
	r.Success("Review posted to GitHub PR!")
	return ExitSuccess
}

func init() {
	addReviewFlags(reviewCmd)
	reviewCmd.Flags().BoolVar(&flagUnstaged, "unstaged", false, "Review unstaged changes (working tree vs index) instead of staged ones")
}
