package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter writes user-facing status lines. Status messages (success,
// failure, warnings) go to the err writer, content (trees, stats, reviews)
// goes to the out writer.
type Reporter struct {
	out io.Writer
	err io.Writer

	success *color.Color
	fail    *color.Color
	warn    *color.Color
	info    *color.Color
	dim     *color.Color
	bold    *color.Color
}

// New creates a Reporter. Colors follow fatih/color's terminal detection and
// are disabled when NO_COLOR is set or the process is not attached to a TTY.
func New(out, err io.Writer) *Reporter {
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}
	return &Reporter{
		out:     out,
		err:     err,
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgBlue),
		dim:     color.New(color.Faint),
		bold:    color.New(color.Bold),
	}
}

// Default returns a Reporter on os.Stdout and os.Stderr.
func Default() *Reporter {
	return New(os.Stdout, os.Stderr)
}

// Discard returns a Reporter that drops everything.
func Discard() *Reporter {
	return New(io.Discard, io.Discard)
}

// Out returns the content writer.
func (r *Reporter) Out() io.Writer { return r.out }

// Err returns the status writer.
func (r *Reporter) Err() io.Writer { return r.err }

func (r *Reporter) Success(format string, a ...interface{}) {
	r.success.Fprintf(r.err, "✔ "+format+"\n", a...)
}

func (r *Reporter) Fail(format string, a ...interface{}) {
	r.fail.Fprintf(r.err, "✖ "+format+"\n", a...)
}

func (r *Reporter) Warn(format string, a ...interface{}) {
	r.warn.Fprintf(r.err, format+"\n", a...)
}

func (r *Reporter) Info(format string, a ...interface{}) {
	r.info.Fprintf(r.err, format+"\n", a...)
}

// Error prints an error detail line without decoration.
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.err, "Error: %v\n", err)
}

// Heading prints a bold line to the content writer.
func (r *Reporter) Heading(format string, a ...interface{}) {
	r.bold.Fprintf(r.out, format+"\n", a...)
}

// Dim prints a faint line to the content writer.
func (r *Reporter) Dim(format string, a ...interface{}) {
	r.dim.Fprintf(r.out, format+"\n", a...)
}

// Println prints a plain line to the content writer.
func (r *Reporter) Println(s string) {
	fmt.Fprintln(r.out, s)
}
