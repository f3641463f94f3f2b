package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/devkit/internal/ui"
)

// DefaultLargeOutputLimit is the payload length, in characters, above which
// a clipboard write needs confirmation.
const DefaultLargeOutputLimit = 500000

// Outcome records which sink, if any, received the payload.
type Outcome int

const (
	OutcomeCopied Outcome = iota
	OutcomeSaved
	OutcomeDryRun
	OutcomeDeclined
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeSaved:
		return "saved"
	case OutcomeDryRun:
		return "dry-run"
	case OutcomeDeclined:
		return "declined"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Options are the per-invocation choices.
type Options struct {
	// Output, when set, writes the payload to this path (relative to the
	// scan root) instead of the clipboard.
	Output string
	// DryRun lists the selection without building or delivering a payload.
	DryRun bool
}

// Result describes a finished bundle.
type Result struct {
	Files []string
	Tree  string
	// Chars is the combined character length of all selected file bodies.
	Chars  int
	Tokens int
	// PayloadSize is the payload length in characters. Zero on dry runs.
	PayloadSize int
	Outcome     Outcome
	// Output is the --output path as given, for OutcomeSaved.
	Output string
	// Destination is the absolute file path for OutcomeSaved.
	Destination string
}

// FileSelector produces the ordered list of root-relative paths to bundle.
type FileSelector interface {
	Select(ctx context.Context, root string) ([]string, error)
}

// Clipboard is the clipboard sink.
type Clipboard interface {
	WriteAll(text string) error
}

// ConfirmFunc decides whether an oversized payload still goes to the
// clipboard. sizeKB is the payload length in rounded kilobytes.
type ConfirmFunc func(sizeKB int) (bool, error)

// Config tunes the bundler.
type Config struct {
	// LargeOutputLimit gates clipboard writes. Zero means DefaultLargeOutputLimit.
	LargeOutputLimit int
	// Concurrency bounds parallel file reads. Zero means runtime.NumCPU().
	Concurrency int
}

// Deps are the bundler's collaborators.
type Deps struct {
	Selector  FileSelector
	Clipboard Clipboard
	// Confirm is consulted for oversized clipboard payloads. Nil declines.
	Confirm  ConfirmFunc
	Reporter *ui.Reporter
}

// Bundler turns a directory into a single LLM-ready text payload.
type Bundler struct {
	cfg  Config
	deps Deps
}

// New creates a Bundler.
func New(cfg Config, deps Deps) *Bundler {
	if cfg.LargeOutputLimit <= 0 {
		cfg.LargeOutputLimit = DefaultLargeOutputLimit
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	if deps.Reporter == nil {
		deps.Reporter = ui.Discard()
	}
	return &Bundler{cfg: cfg, deps: deps}
}

// Build selects, reads and delivers. The only message it emits is the
// large-payload warning shown before Confirm is asked; outcomes are reported
// by Run.
func (b *Bundler) Build(ctx context.Context, root string, opts Options) (*Result, error) {
	files, err := b.deps.Selector.Select(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFilesFound
	}

	contents, err := b.readAll(ctx, root, files)
	if err != nil {
		return nil, err
	}

	res := &Result{Files: files, Tree: Tree(files)}
	for _, c := range contents {
		res.Chars += Length(c)
	}
	res.Tokens = EstimateTokens(res.Chars)

	if opts.DryRun {
		res.Outcome = OutcomeDryRun
		return res, nil
	}

	payload := Assemble(files, contents)
	res.PayloadSize = Length(payload)

	if opts.Output != "" {
		dest := opts.Output
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(root, filepath.FromSlash(dest))
		}
		if err := writeFileAtomic(dest, []byte(payload)); err != nil {
			return nil, &SinkWriteError{Sink: dest, Err: err}
		}
		res.Outcome = OutcomeSaved
		res.Output = opts.Output
		res.Destination = dest
		return res, nil
	}

	if res.PayloadSize > b.cfg.LargeOutputLimit {
		kb := SizeKB(res.PayloadSize)
		b.deps.Reporter.Warn("\n⚠️  Warning: Output is large (%dKB).", kb)
		ok, err := b.confirm(kb)
		if err != nil {
			return nil, err
		}
		if !ok {
			res.Outcome = OutcomeDeclined
			return res, nil
		}
	}

	if b.deps.Clipboard == nil {
		return nil, &SinkWriteError{Sink: "clipboard", Err: fmt.Errorf("no clipboard configured")}
	}
	if err := b.deps.Clipboard.WriteAll(payload); err != nil {
		return nil, &SinkWriteError{Sink: "clipboard", Err: err}
	}
	res.Outcome = OutcomeCopied
	return res, nil
}

func (b *Bundler) confirm(kb int) (bool, error) {
	if b.deps.Confirm == nil {
		return false, nil
	}
	return b.deps.Confirm(kb)
}

// readAll reads every selected file concurrently, keeping selector order.
// Invalid UTF-8 is replaced so the payload stays valid text.
func (b *Bundler) readAll(ctx context.Context, root string, files []string) ([]string, error) {
	contents := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Concurrency)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				return &FileReadError{Path: rel, Err: err}
			}
			contents[i] = strings.ToValidUTF8(string(data), "�")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

// writeFileAtomic writes data next to path and renames it into place so a
// failed write never leaves a truncated file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
