package selector

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options controls a scan.
type Options struct {
	// IgnoreFile is the root-relative project ignore file. Empty means .gitignore.
	IgnoreFile string
	// ExtraIgnores are appended to the built-in noise list.
	ExtraIgnores []string
	// Concurrency bounds parallel binary sniffing. Zero means runtime.NumCPU().
	Concurrency int
}

// Selector produces the ordered set of files to bundle.
type Selector struct {
	opts Options
}

// New creates a Selector.
func New(opts Options) *Selector {
	if opts.IgnoreFile == "" {
		opts.IgnoreFile = DefaultIgnoreFile
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return &Selector{opts: opts}
}

// Select returns the files under root that pass every ignore layer and are
// not binary, as root-relative slash paths in walk order.
func (s *Selector) Select(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	policy, err := LoadPolicy(root, s.opts.IgnoreFile, s.opts.ExtraIgnores...)
	if err != nil {
		return nil, err
	}

	candidates, err := walk(root, policy)
	if err != nil {
		return nil, err
	}

	binary := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, rel := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			isBin, err := IsBinaryFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				return fmt.Errorf("classifying %s: %w", rel, err)
			}
			binary[i] = isBin
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(candidates))
	for i, rel := range candidates {
		if !binary[i] {
			files = append(files, rel)
		}
	}
	return files, nil
}

// Select scans root with default options.
func Select(ctx context.Context, root string) ([]string, error) {
	return New(Options{}).Select(ctx, root)
}

// walk enumerates files not excluded by the policy. Unreadable subdirectories
// are skipped; an unreadable root is an error.
func walk(root string, policy *Policy) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && IsStructural(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if policy.Ignores(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
