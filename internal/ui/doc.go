// Package ui holds the terminal-facing helpers shared by every command:
// a colored [Reporter] for status and content lines, and a [Prompter] for
// yes/no, free-text and pick-one questions.
package ui
