package bundle

import (
	"context"
	"errors"
)

// Run builds the bundle and reports the outcome to the user. The returned
// error is the same one Build produced, after it has been reported.
func (b *Bundler) Run(ctx context.Context, root string, opts Options) (*Result, error) {
	r := b.deps.Reporter

	res, err := b.Build(ctx, root, opts)
	if errors.Is(err, ErrNoFilesFound) {
		r.Warn("No valid files found to copy.")
		return nil, err
	}
	if err != nil {
		r.Fail("Failed to copy context.")
		r.Error(err)
		return nil, err
	}

	switch res.Outcome {
	case OutcomeDryRun:
		r.Success("Dry run complete.")
		r.Heading("\nFile Structure:")
		r.Println(res.Tree)
	case OutcomeSaved:
		r.Success("Context saved to %s", res.Output)
	case OutcomeCopied:
		r.Success("Context copied to clipboard!")
	case OutcomeDeclined:
		r.Info("Aborted. Try using --output <file> instead.")
		return res, nil
	}

	r.Dim("\nStats:")
	r.Dim("- Files: %d", len(res.Files))
	r.Dim("- Est. Tokens: ~%d", res.Tokens)
	return res, nil
}
