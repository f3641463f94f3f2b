package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned by prompts that need an answer but cannot ask.
var ErrNotInteractive = errors.New("input is not a terminal")

// Prompter asks questions on a line-oriented input.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	label       *Reporter
}

// NewPrompter creates a Prompter on a file, typically os.Stdin. Prompts are
// only shown when the file is a terminal; otherwise every question takes its
// default answer.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	fd := in.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewPrompterFrom(in, out, interactive)
}

// NewPrompterFrom creates a Prompter on an arbitrary reader.
func NewPrompterFrom(in io.Reader, out io.Writer, interactive bool) *Prompter {
	if out == nil {
		out = io.Discard
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
		label:       New(out, out),
	}
}

// Interactive reports whether questions are actually asked.
func (p *Prompter) Interactive() bool { return p.interactive }

// Confirm asks a yes/no question. Empty input, EOF and non-interactive input
// all return def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	if !p.interactive {
		return def, nil
	}
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	p.label.bold.Fprintf(p.out, "? %s (%s) ", question, hint)

	line, err := p.readLine()
	if errors.Is(err, io.EOF) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

// Input asks for free text, returning def on empty input.
func (p *Prompter) Input(question, def string) (string, error) {
	if !p.interactive {
		if def == "" {
			return "", fmt.Errorf("%s: %w", question, ErrNotInteractive)
		}
		return def, nil
	}
	if def != "" {
		p.label.bold.Fprintf(p.out, "? %s (%s) ", question, def)
	} else {
		p.label.bold.Fprintf(p.out, "? %s ", question)
	}
	line, err := p.readLine()
	if errors.Is(err, io.EOF) && def != "" {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Select asks the user to pick one of choices by number.
func (p *Prompter) Select(question string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no choices to select from")
	}
	if !p.interactive {
		return "", fmt.Errorf("%s: %w", question, ErrNotInteractive)
	}
	p.label.bold.Fprintf(p.out, "? %s\n", question)
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
	}
	for {
		fmt.Fprintf(p.out, "  Answer [1-%d]: ", len(choices))
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		for _, c := range choices {
			if strings.EqualFold(c, line) {
				return c, nil
			}
		}
		fmt.Fprintf(p.out, "  Please enter a number between 1 and %d.\n", len(choices))
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}
