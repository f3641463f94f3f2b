package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/devkit/internal/review"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *review.Report, format, outPath string) error {
	return writeReport(report, format, outPath, os.Stdout)
}

func writeReport(report *review.Report, format, outPath string, stdout io.Writer) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	w := stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writer.Write(w, report)
}

// Publisher renders reviews locally. It satisfies review.Publisher.
type Publisher struct {
	Format string
	// Path, when set, receives the report instead of Stdout.
	Path   string
	Stdout io.Writer
}

func (p *Publisher) Publish(_ context.Context, report *review.Report) error {
	stdout := p.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	return writeReport(report, p.Format, p.Path, stdout)
}
