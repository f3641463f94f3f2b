package bundle

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/devkit/internal/selector"
	"github.com/dshills/devkit/internal/ui"
)

func init() {
	color.NoColor = true
}

type fakeClipboard struct {
	text   string
	writes int
	err    error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	c.writes++
	return nil
}

type fixedSelector []string

func (s fixedSelector) Select(context.Context, string) ([]string, error) {
	return s, nil
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func referenceTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"a.txt":             "hello",
		"b.log":             "noise",
		".gitignore":        "*.log\n",
		"node_modules/x.js": "module.exports = 1",
	})
}

func TestBuild_ReferenceTree(t *testing.T) {
	root := referenceTree(t)
	clip := &fakeClipboard{}
	b := New(Config{}, Deps{Selector: selector.New(selector.Options{}), Clipboard: clip})

	res, err := b.Build(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, res.Files)
	assert.Equal(t, 5, res.Chars)
	assert.Equal(t, 1, res.Tokens)
	assert.Equal(t, OutcomeCopied, res.Outcome)
	assert.Equal(t, 1, clip.writes)
	assert.Equal(t, 1, strings.Count(clip.text, "# File: "))
	assert.Contains(t, clip.text, "# File: a.txt\n```\nhello\n```")
	assert.Equal(t, Length(clip.text), res.PayloadSize)
}

func TestBuild_DryRunTouchesNoSink(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt":     "one",
		"src/b.go":  "package b",
		"src/c.txt": "three",
	})
	clip := &fakeClipboard{}
	b := New(Config{}, Deps{Selector: selector.New(selector.Options{}), Clipboard: clip})

	res, err := b.Build(context.Background(), root, Options{DryRun: true, Output: "ctx.md"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeDryRun, res.Outcome)
	assert.Zero(t, res.PayloadSize)
	assert.Zero(t, clip.writes)
	assert.NoFileExists(t, filepath.Join(root, "ctx.md"))

	lines := strings.Split(res.Tree, "\n")
	assert.Equal(t, res.Files, lines)
	seen := map[string]bool{}
	for _, l := range lines {
		assert.False(t, seen[l], "path %s listed twice", l)
		seen[l] = true
	}
}

func TestBuild_FileSink(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello"})
	clip := &fakeClipboard{}
	b := New(Config{LargeOutputLimit: 1}, Deps{Selector: fixedSelector{"a.txt"}, Clipboard: clip})

	res, err := b.Build(context.Background(), root, Options{Output: "ctx.md"})
	require.NoError(t, err)

	dest := filepath.Join(root, "ctx.md")
	assert.Equal(t, OutcomeSaved, res.Outcome)
	assert.Equal(t, dest, res.Destination)
	assert.Equal(t, "ctx.md", res.Output)
	assert.Zero(t, clip.writes, "file output must not touch the clipboard")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, Assemble([]string{"a.txt"}, []string{"hello"}), string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestBuild_FileSinkError(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello"})
	b := New(Config{}, Deps{Selector: fixedSelector{"a.txt"}})

	_, err := b.Build(context.Background(), root, Options{Output: "missing/dir/ctx.md"})
	var sinkErr *SinkWriteError
	require.ErrorAs(t, err, &sinkErr)
	assert.Contains(t, sinkErr.Sink, "ctx.md")
}

func TestBuild_ClipboardError(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello"})
	boom := errors.New("no display")
	b := New(Config{}, Deps{Selector: fixedSelector{"a.txt"}, Clipboard: &fakeClipboard{err: boom}})

	_, err := b.Build(context.Background(), root, Options{})
	var sinkErr *SinkWriteError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "clipboard", sinkErr.Sink)
	assert.ErrorIs(t, err, boom)
}

func TestBuild_SizeGate(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": strings.Repeat("x", 4096)})

	tests := []struct {
		name       string
		limit      int
		confirm    ConfirmFunc
		wantAsked  bool
		wantWrites int
		want       Outcome
	}{
		{"under limit skips prompt", DefaultLargeOutputLimit, nil, false, 1, OutcomeCopied},
		{"over limit without prompt declines", 100, nil, false, 0, OutcomeDeclined},
		{"over limit declined", 100, func(int) (bool, error) { return false, nil }, true, 0, OutcomeDeclined},
		{"over limit confirmed", 100, func(int) (bool, error) { return true, nil }, true, 1, OutcomeCopied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := &fakeClipboard{}
			asked := false
			gotKB := 0
			var confirm ConfirmFunc
			if tt.confirm != nil {
				confirm = func(kb int) (bool, error) {
					asked = true
					gotKB = kb
					return tt.confirm(kb)
				}
			}
			b := New(Config{LargeOutputLimit: tt.limit}, Deps{
				Selector:  fixedSelector{"a.txt"},
				Clipboard: clip,
				Confirm:   confirm,
			})

			res, err := b.Build(context.Background(), root, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, tt.wantAsked, asked)
			assert.Equal(t, tt.wantWrites, clip.writes)
			if tt.wantAsked {
				assert.Equal(t, SizeKB(res.PayloadSize), gotKB)
			}
			if tt.wantWrites == 0 {
				assert.Empty(t, clip.text)
			}
		})
	}
}

func TestBuild_ConfirmError(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello"})
	boom := errors.New("tty gone")
	clip := &fakeClipboard{}
	b := New(Config{LargeOutputLimit: 1}, Deps{
		Selector:  fixedSelector{"a.txt"},
		Clipboard: clip,
		Confirm:   func(int) (bool, error) { return false, boom },
	})

	_, err := b.Build(context.Background(), root, Options{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, clip.writes)
}

func TestBuild_NoFiles(t *testing.T) {
	root := writeTree(t, map[string]string{".gitignore": "*\n", "a.txt": "x"})
	clip := &fakeClipboard{}
	b := New(Config{}, Deps{Selector: selector.New(selector.Options{}), Clipboard: clip})

	_, err := b.Build(context.Background(), root, Options{Output: "ctx.md"})
	assert.ErrorIs(t, err, ErrNoFilesFound)
	assert.Zero(t, clip.writes)
	assert.NoFileExists(t, filepath.Join(root, "ctx.md"))
}

func TestBuild_ReadError(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello"})
	b := New(Config{}, Deps{Selector: fixedSelector{"a.txt", "gone.txt"}, Clipboard: &fakeClipboard{}})

	_, err := b.Build(context.Background(), root, Options{})
	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "gone.txt", readErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild_KeepsSelectorOrder(t *testing.T) {
	files := map[string]string{}
	var order []string
	for _, name := range []string{"z.txt", "m.txt", "a.txt", "k.txt", "b.txt"} {
		files[name] = "body of " + name
		order = append(order, name)
	}
	root := writeTree(t, files)
	clip := &fakeClipboard{}
	b := New(Config{Concurrency: 4}, Deps{Selector: fixedSelector(order), Clipboard: clip})

	_, err := b.Build(context.Background(), root, Options{})
	require.NoError(t, err)

	last := -1
	for _, name := range order {
		idx := strings.Index(clip.text, "# File: "+name+"\n```\nbody of "+name)
		require.GreaterOrEqual(t, idx, 0, "missing section for %s", name)
		assert.Greater(t, idx, last, "%s out of order", name)
		last = idx
	}
}

func TestBuild_InvalidUTF8(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "ok\xffok"})
	clip := &fakeClipboard{}
	b := New(Config{}, Deps{Selector: fixedSelector{"a.txt"}, Clipboard: clip})

	_, err := b.Build(context.Background(), root, Options{})
	require.NoError(t, err)
	assert.Contains(t, clip.text, "ok�ok")
}

func TestRun_Reports(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		limit      int
		wantStatus []string
		wantOut    []string
		noStats    bool
	}{
		{
			name:       "copied",
			wantStatus: []string{"Context copied to clipboard!"},
			wantOut:    []string{"Stats:", "- Files: 1", "- Est. Tokens: ~1"},
		},
		{
			name:       "saved",
			opts:       Options{Output: "ctx.md"},
			wantStatus: []string{"Context saved to ctx.md\n"},
			wantOut:    []string{"- Files: 1"},
		},
		{
			name:       "dry run",
			opts:       Options{DryRun: true},
			wantStatus: []string{"Dry run complete."},
			wantOut:    []string{"File Structure:", "a.txt", "- Est. Tokens: ~1"},
		},
		{
			name:       "declined",
			limit:      1,
			wantStatus: []string{"Warning: Output is large (0KB).", "Aborted. Try using --output <file> instead."},
			noStats:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeTree(t, map[string]string{"a.txt": "hello"})
			var out, status bytes.Buffer
			b := New(Config{LargeOutputLimit: tt.limit}, Deps{
				Selector:  fixedSelector{"a.txt"},
				Clipboard: &fakeClipboard{},
				Reporter:  ui.New(&out, &status),
			})

			_, err := b.Run(context.Background(), root, tt.opts)
			require.NoError(t, err)
			for _, s := range tt.wantStatus {
				assert.Contains(t, status.String(), s)
			}
			for _, s := range tt.wantOut {
				assert.Contains(t, out.String(), s)
			}
			if tt.noStats {
				assert.NotContains(t, out.String(), "Stats:")
			}
		})
	}
}

func TestRun_ReportsFailures(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "hello"})

	var out, status bytes.Buffer
	b := New(Config{}, Deps{Selector: fixedSelector{}, Reporter: ui.New(&out, &status)})
	_, err := b.Run(context.Background(), root, Options{})
	assert.ErrorIs(t, err, ErrNoFilesFound)
	assert.Contains(t, status.String(), "No valid files found to copy.")
	assert.Empty(t, out.String())

	status.Reset()
	b = New(Config{}, Deps{Selector: fixedSelector{"gone.txt"}, Reporter: ui.New(&out, &status)})
	_, err = b.Run(context.Background(), root, Options{})
	require.Error(t, err)
	assert.Contains(t, status.String(), "Failed to copy context.")
	assert.Contains(t, status.String(), "gone.txt")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "copied", OutcomeCopied.String())
	assert.Equal(t, "declined", OutcomeDeclined.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
