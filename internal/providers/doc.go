// Package providers implements the Reviewer interface for OpenAI-compatible
// chat completion APIs.
//
// Supported providers: openai (any OpenAI-compatible endpoint, Z.ai by
// default), and ollama / lmstudio for local models. All of them post to
// <baseURL>/chat/completions and share a retry helper that backs off
// exponentially on rate limits and gives up immediately on anything else.
//
// Use [New] to obtain a Reviewer from [Settings].
package providers
