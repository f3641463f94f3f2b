package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/devkit/internal/review"
)

// JSONWriter outputs the full report as indented JSON. The review body is
// Markdown, so <, > and & are written as-is rather than \u-escaped.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
