package bundle

import (
	"math"
	"strings"
	"unicode/utf8"
)

const fence = "```"

// Tree lists the selected paths one per line, in selector order.
func Tree(files []string) string {
	return strings.Join(files, "\n")
}

// Assemble builds the payload: a title, the file-structure block, then one
// fenced section per file. contents must be parallel to files.
func Assemble(files, contents []string) string {
	tree := Tree(files)

	size := len(tree) + 64
	for i, f := range files {
		size += len(f) + len(contents[i]) + 24
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString("# Project Context\n\n## File Structure\n")
	b.WriteString(fence + "\n")
	b.WriteString(tree)
	b.WriteString("\n" + fence + "\n")
	for i, f := range files {
		b.WriteString("\n\n# File: ")
		b.WriteString(f)
		b.WriteString("\n" + fence + "\n")
		b.WriteString(contents[i])
		b.WriteString("\n" + fence)
	}
	return b.String()
}

// Length measures text in characters, the unit used for token estimates and
// the clipboard size limit.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// EstimateTokens approximates LLM token cost at four characters per token.
func EstimateTokens(chars int) int {
	return int(math.Round(float64(chars) / 4))
}

// SizeKB converts a character count to rounded kilobytes for display.
func SizeKB(chars int) int {
	return int(math.Round(float64(chars) / 1024))
}
