package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/devkit/internal/review"
)

func TestJSONWriter(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var parsed review.Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Tool != "devkit" {
		t.Errorf("Tool = %q, want %q", parsed.Tool, "devkit")
	}
	if parsed.Review != report.Review {
		t.Errorf("Review = %q, want %q", parsed.Review, report.Review)
	}
	if !parsed.Truncated || parsed.DiffChars != 20000 {
		t.Errorf("truncation metadata lost: %+v", parsed)
	}
}

func TestJSONWriter_KeepsMarkdownVerbatim(t *testing.T) {
	report := sampleReport()
	report.Review = "Use `List<T>` and check `a && b` in <code>."

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "List<T>") || !strings.Contains(out, "a && b") {
		t.Errorf("review was escaped: %s", out)
	}
	if strings.Contains(out, `\u003c`) || strings.Contains(out, `\u0026`) {
		t.Errorf("unexpected \\u escapes: %s", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Error("output should end with a newline")
	}
}
