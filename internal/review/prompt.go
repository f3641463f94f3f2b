package review

import "unicode/utf8"

const systemPrompt = `You are a Senior Software Engineer doing a Code Review.

Rules:
1. Summarize the changes in 1 sentence.
2. Identify any critical bugs or security risks (SQL injection, hardcoded secrets).
3. Suggest code style improvements (focus on readability).
4. Generate a concise, conventional commit message for these changes.
5. If the code looks good, output "LGTM" (Looks Good To Me) with a thumbs up.

Format your response in nice Markdown.`

// TruncationMarker is appended to diffs cut at the size limit.
const TruncationMarker = "\n...[Diff Truncated due to size]..."

// SystemPrompt returns the system prompt for code review.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt wraps the processed diff for the model.
func BuildUserPrompt(diff string) string {
	return "Here is the git diff of the changes:\n\n" + diff
}

// Truncate keeps the first max characters of diff and appends
// TruncationMarker when anything was cut. max <= 0 disables truncation.
func Truncate(diff string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(diff) <= max {
		return diff, false
	}
	n := 0
	for i := range diff {
		if n == max {
			return diff[:i] + TruncationMarker, true
		}
		n++
	}
	return diff, false
}
