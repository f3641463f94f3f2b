// Package cache provides a file-based cache for LLM review responses.
//
// Cache entries are keyed by a SHA-256 hash of the provider name, model, and
// processed diff. Each entry stores the raw response with a creation
// timestamp and a TTL in seconds. Expired entries are dropped on read and
// can be pruned with Clear(true).
//
// The default cache directory is $XDG_CACHE_HOME/devkit (or the
// OS-appropriate equivalent). Diffs are redacted before they are hashed, so
// nothing stored here depends on raw secrets.
package cache
