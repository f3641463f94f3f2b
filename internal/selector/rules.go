package selector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultIgnoreFile is the project ignore file read when none is configured.
const DefaultIgnoreFile = ".gitignore"

// DefaultIgnores is the built-in noise list applied to every scan.
var DefaultIgnores = []string{
	".git",
	"node_modules",
	"dist",
	"build",
	"coverage",
	".DS_Store",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	".env",
	".env.local",
	"*.png",
	"*.jpg",
	"*.jpeg",
	"*.gif",
	"*.ico",
	"*.svg",
}

// structuralDirs are never descended into, regardless of ignore rules.
var structuralDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// IsStructural reports whether a directory name is skipped during traversal.
func IsStructural(name string) bool {
	return structuralDirs[name]
}

// Layer is one tier of the ignore policy.
type Layer interface {
	Name() string
	Ignores(relPath string) bool
}

// patternLayer matches gitignore patterns case-insensitively. Each line is
// compiled on its own so ancestor directories can be tested first: once a
// directory is excluded, nothing below it is re-included by a later negation.
type patternLayer struct {
	name  string
	self  string
	rules []rule
}

type rule struct {
	negate  bool
	dirOnly bool
	matcher *gitignore.GitIgnore
}

func newPatternLayer(name string, lines []string) *patternLayer {
	l := &patternLayer{name: name}
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.ToLower(line)
		negate := strings.HasPrefix(line, "!")
		if negate {
			line = line[1:]
		}
		if strings.Trim(line, "/") == "" {
			continue
		}
		l.rules = append(l.rules, rule{
			negate:  negate,
			dirOnly: strings.HasSuffix(line, "/"),
			matcher: gitignore.CompileIgnoreLines(line),
		})
	}
	return l
}

func (l *patternLayer) Name() string { return l.name }

func (l *patternLayer) Ignores(relPath string) bool {
	p := strings.ToLower(relPath)
	if l.self != "" && p == l.self {
		return true
	}
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && l.matchDir(p[:i]) {
			return true
		}
	}
	return l.match(p)
}

// match applies the rules to a file path; the last matching rule wins.
func (l *patternLayer) match(p string) bool {
	ignored := false
	for _, r := range l.rules {
		if r.matcher.MatchesPath(p) {
			ignored = !r.negate
		}
	}
	return ignored
}

// matchDir applies the rules to a directory path given without a trailing
// slash. Directory-only patterns are tested against the slashed form.
func (l *patternLayer) matchDir(dir string) bool {
	ignored := false
	for _, r := range l.rules {
		q := dir
		if r.dirOnly {
			q += "/"
		}
		if r.matcher.MatchesPath(q) {
			ignored = !r.negate
		}
	}
	return ignored
}

// Policy evaluates its layers in order and stops at the first match.
type Policy struct {
	layers []Layer
}

// NewPolicy builds a policy from explicit layers.
func NewPolicy(layers ...Layer) *Policy {
	return &Policy{layers: layers}
}

// Ignores reports whether any layer excludes relPath.
func (p *Policy) Ignores(relPath string) bool {
	_, ok := p.Match(relPath)
	return ok
}

// Match returns the name of the first layer that excludes relPath.
func (p *Policy) Match(relPath string) (string, bool) {
	for _, l := range p.layers {
		if l.Ignores(relPath) {
			return l.Name(), true
		}
	}
	return "", false
}

// Layers returns the names of the compiled layers, in evaluation order.
func (p *Policy) Layers() []string {
	names := make([]string, len(p.layers))
	for i, l := range p.layers {
		names[i] = l.Name()
	}
	return names
}

// DefaultLayer compiles the built-in noise list plus any extra patterns.
func DefaultLayer(extra ...string) Layer {
	lines := make([]string, 0, len(DefaultIgnores)+len(extra))
	lines = append(lines, DefaultIgnores...)
	lines = append(lines, extra...)
	return newPatternLayer("defaults", lines)
}

// ProjectLayer reads the ignore file at root/name. A missing file yields a nil
// layer and no error. The ignore file itself is excluded by its own layer.
func ProjectLayer(root, name string) (Layer, error) {
	if name == "" {
		name = DefaultIgnoreFile
	}
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	l := newPatternLayer(name, lines)
	l.self = strings.ToLower(filepath.ToSlash(filepath.Clean(name)))
	return l, nil
}

// LoadPolicy compiles the default layer and the project layer for root.
func LoadPolicy(root, ignoreFile string, extra ...string) (*Policy, error) {
	layers := []Layer{DefaultLayer(extra...)}
	project, err := ProjectLayer(root, ignoreFile)
	if err != nil {
		return nil, err
	}
	if project != nil {
		layers = append(layers, project)
	}
	return NewPolicy(layers...), nil
}
