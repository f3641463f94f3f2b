package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/devkit/internal/cache"
	"github.com/dshills/devkit/internal/providers"
	"github.com/dshills/devkit/internal/redact"
	"github.com/dshills/devkit/internal/ui"
)

// ErrNoChanges is returned when the source produced an empty diff.
var ErrNoChanges = errors.New("no staged changes found")

// DiffSource produces the diff to review.
type DiffSource interface {
	// Name identifies the source in reports, e.g. "staged" or "pr#12".
	Name() string
	Diff(ctx context.Context) (string, error)
}

// Publisher delivers a finished review.
type Publisher interface {
	Publish(ctx context.Context, r *Report) error
}

// Cache stores provider responses by key.
type Cache interface {
	Get(key string) (string, bool)
	Put(key, response string) error
}

// Options tune the pipeline.
type Options struct {
	Model        string
	MaxDiffChars int
	Redact       bool
	// RedactPaths are glob patterns whose diff sections are dropped whole.
	RedactPaths []string
	MaxTokens   int
}

// Pipeline runs one review: fetch the diff, prepare it, ask the provider,
// publish the answer.
type Pipeline struct {
	Source    DiffSource
	Reviewer  providers.Reviewer
	Publisher Publisher
	// Cache is optional.
	Cache    Cache
	Reporter *ui.Reporter
	Repo     RepoInfo
	Version  string
	Options  Options
}

// Run executes the pipeline. ErrNoChanges is returned before the provider
// is contacted when there is nothing to review.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	r := p.Reporter
	if r == nil {
		r = ui.Discard()
	}
	start := time.Now()

	r.Info("Reading %s changes...", p.Source.Name())
	diff, err := p.Source.Diff(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		return nil, ErrNoChanges
	}
	diffMs := time.Since(start).Milliseconds()

	// Redact first: a secret cut by truncation may be too short to match.
	processed := diff
	if p.Options.Redact {
		processed = redact.Diff(processed, p.Options.RedactPaths)
	}
	processed, truncated := Truncate(processed, p.Options.MaxDiffChars)

	report := &Report{
		Tool:      "devkit",
		Version:   p.Version,
		RunID:     uuid.NewString(),
		CreatedAt: start.UTC(),
		Repo:      p.Repo,
		Source:    p.Source.Name(),
		Provider:  p.Reviewer.Name(),
		Model:     p.Options.Model,
		DiffChars: len([]rune(diff)),
		Truncated: truncated,
		Redacted:  p.Options.Redact,
	}

	key := cache.BuildCacheKey(report.Provider, report.Model, processed)
	if p.Cache != nil {
		if cached, ok := p.Cache.Get(key); ok {
			report.Review = cached
			report.Cached = true
		}
	}

	if !report.Cached {
		r.Info("Analyzing changes...")
		llmStart := time.Now()
		resp, err := p.Reviewer.Review(ctx, providers.ReviewRequest{
			SystemPrompt: SystemPrompt(),
			UserPrompt:   BuildUserPrompt(processed),
			MaxTokens:    p.Options.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("provider review: %w", err)
		}
		report.Timing.LLMMs = time.Since(llmStart).Milliseconds()
		report.Review = resp.Content
		report.TokensUsed = resp.TokensUsed

		if p.Cache != nil {
			if err := p.Cache.Put(key, resp.Content); err != nil {
				r.Warn("Could not cache review: %v", err)
			}
		}
	}

	report.Timing.DiffMs = diffMs
	report.Timing.TotalMs = time.Since(start).Milliseconds()

	if err := p.Publisher.Publish(ctx, report); err != nil {
		return nil, fmt.Errorf("publishing review: %w", err)
	}
	return report, nil
}
