package review

import "time"

// RepoInfo contains repository metadata.
type RepoInfo struct {
	Root   string `json:"root,omitempty"`
	Head   string `json:"head,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// Timing contains performance metrics.
type Timing struct {
	DiffMs  int64 `json:"diffMs"`
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is the top-level output structure.
type Report struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	RunID     string    `json:"runId"`
	CreatedAt time.Time `json:"createdAt"`
	Repo      RepoInfo  `json:"repo"`
	// Source names where the diff came from, e.g. "staged" or "pr#12".
	Source   string `json:"source"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	// Review is the model's Markdown review, published verbatim.
	Review     string `json:"review"`
	DiffChars  int    `json:"diffChars"`
	Truncated  bool   `json:"truncated"`
	Redacted   bool   `json:"redacted"`
	Cached     bool   `json:"cached"`
	TokensUsed int    `json:"tokensUsed,omitempty"`
	Timing     Timing `json:"timing"`
}
