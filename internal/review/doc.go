// Package review runs an LLM code review over a diff.
//
// A [Pipeline] pulls the diff from a [DiffSource] (staged changes locally,
// the pull request in CI), truncates it to a character budget, redacts
// secrets, consults the response cache and otherwise asks a
// providers.Reviewer, then hands the [Report] to a [Publisher].
package review
