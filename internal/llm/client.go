package llm

import (
	"context"
	"time"
)

// Client defines the interface for prompt-completion providers.
type Client interface {
	// Complete sends a prompt and returns the raw completion text. Provider
	// failures surface as errors; implementations never panic across this
	// boundary.
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// Completion contains a provider's raw completion text plus optional token
// usage accounting.
type Completion struct {
	Text       string
	TokensUsed int
}

// Config holds configuration for creating a gateway client.
type Config struct {
	Provider       string
	Model          string
	APIKey         string
	BaseURL        string
	Temperature    float64
	MaxTokens      int
	RequestTimeout time.Duration
	RateLimit      int // requests per minute
	MaxRetries     int
	RetryDelay     time.Duration
}
