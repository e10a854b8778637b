package llm

import "context"

// Message is one turn of a chat completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Options tunes a single completion call
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// JSONMode asks the provider to emit a single JSON object. Providers
	// without native support fall back to prompt instructions alone.
	JSONMode bool
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete runs one chat completion and returns the raw text
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}
