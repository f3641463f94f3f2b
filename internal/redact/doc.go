// Package redact removes secrets from diff content before it is sent to any
// LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens, and provider-specific tokens (OpenAI, GitHub, Slack).
//
// Path-based redaction is also supported: diff sections for files matching
// configured glob patterns are replaced with [REDACTED] rather than being
// scanned line by line.
package redact
