package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/devkit/internal/review"
)

const (
	bannerTop    = "================ 🤖 AI CODE REVIEW ================"
	bannerBottom = "==================================================="
)

// TextWriter prints the review between banners for the terminal.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("\n%s\n\n", bannerTop)
	ew.println(strings.TrimRight(report.Review, "\n"))
	ew.printf("\n%s\n", bannerBottom)

	var notes []string
	if report.Truncated {
		notes = append(notes, fmt.Sprintf("diff truncated from %d chars", report.DiffChars))
	}
	if report.Cached {
		notes = append(notes, "cached")
	}
	ew.printf("%s/%s on %s changes", report.Provider, report.Model, report.Source)
	if len(notes) > 0 {
		ew.printf(" (%s)", strings.Join(notes, ", "))
	}
	ew.printf(" in %dms\n", report.Timing.TotalMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
