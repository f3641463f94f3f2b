package output

import (
	"io"
	"strings"

	"github.com/dshills/devkit/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.println("## 🤖 AI Code Review\n")
	ew.println(strings.TrimSpace(report.Review))
	ew.println("")
	ew.println("---")
	ew.printf("<sub>%s · %s · %s changes", report.Provider, report.Model, report.Source)
	if report.Truncated {
		ew.printf(" · diff truncated (%d chars)", report.DiffChars)
	}
	ew.println("</sub>")

	return ew.err
}
