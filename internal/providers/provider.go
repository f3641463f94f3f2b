package providers

import (
	"context"
	"fmt"
)

// ReviewRequest contains the data sent to an LLM for review.
type ReviewRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// ReviewResponse contains the raw response from an LLM.
type ReviewResponse struct {
	Content    string
	TokensUsed int
}

// Reviewer is the provider abstraction interface.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
}

// Settings selects and configures a provider. Empty BaseURL picks the
// provider's default endpoint.
type Settings struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

// New creates a provider by name. Every supported provider speaks the
// OpenAI chat completions protocol; they differ in default endpoint and
// whether a key is required.
func New(s Settings) (Reviewer, error) {
	switch s.Provider {
	case "openai", "zai", "":
		if s.APIKey == "" {
			return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
		}
		return NewOpenAI(s.Model, orDefault(s.BaseURL, DefaultBaseURL), s.APIKey), nil
	case "ollama":
		o := NewOpenAI(s.Model, orDefault(s.BaseURL, defaultOllamaURL), s.APIKey)
		o.name = "ollama"
		return o, nil
	case "lmstudio":
		o := NewOpenAI(s.Model, orDefault(s.BaseURL, defaultLMStudioURL), s.APIKey)
		o.name = "lmstudio"
		return o, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", s.Provider)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Preset describes a supported provider and its default endpoint.
type Preset struct {
	Name     string
	BaseURL  string
	NeedsKey bool
}

// Presets lists the providers New accepts.
func Presets() []Preset {
	return []Preset{
		{Name: "openai", BaseURL: DefaultBaseURL, NeedsKey: true},
		{Name: "zai", BaseURL: DefaultBaseURL, NeedsKey: true},
		{Name: "ollama", BaseURL: defaultOllamaURL},
		{Name: "lmstudio", BaseURL: defaultLMStudioURL},
	}
}
