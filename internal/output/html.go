package output

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dshills/devkit/internal/review"
)

// markdown renders review bodies. Raw HTML in the model's answer is dropped
// by goldmark's default renderer.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTMLWriter renders the review as a standalone HTML page.
type HTMLWriter struct{}

func (h *HTMLWriter) Write(w io.Writer, report *review.Report) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(report.Review), &body); err != nil {
		return fmt.Errorf("rendering review: %w", err)
	}

	ew := &errWriter{w: w}
	ew.println("<!DOCTYPE html>")
	ew.println(`<html><head><meta charset="utf-8"><title>AI Code Review</title></head><body>`)
	ew.println("<h2>🤖 AI Code Review</h2>")
	ew.printf("%s", body.String())
	ew.println("<hr>")
	ew.printf("<p><sub>%s · %s · %s changes",
		html.EscapeString(report.Provider), html.EscapeString(report.Model), html.EscapeString(report.Source))
	if report.Truncated {
		ew.printf(" · diff truncated (%d chars)", report.DiffChars)
	}
	ew.println("</sub></p>")
	ew.println("</body></html>")
	return ew.err
}
