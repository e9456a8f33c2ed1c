package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/mjanssen/docflow/internal/common"
)

// Gateway wraps a raw provider client with rate limiting and retries. It
// implements Client itself, so callers never see which provider sits behind
// it.
type Gateway struct {
	client    Client
	limiter   *rate.Limiter
	logger    *slog.Logger
	retryOpts common.RetryOptions
}

// NewGateway creates a gateway for the configured provider.
func NewGateway(cfg Config, logger *slog.Logger) (*Gateway, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewGatewayWithClient(client, cfg, logger), nil
}

// NewGatewayWithClient wraps an existing client. Used by tests to inject
// scripted providers.
func NewGatewayWithClient(client Client, cfg Config, logger *slog.Logger) *Gateway {
	requestsPerMinute := cfg.RateLimit
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
		logger:    logger,
		retryOpts: retryOpts,
	}
}

// Complete sends a prompt to the underlying provider, waiting for rate-limit
// headroom and retrying transient failures.
func (g *Gateway) Complete(ctx context.Context, prompt string) (Completion, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return Completion{}, fmt.Errorf("rate limit error: %w", err)
	}

	var completion Completion

	err := common.WithRetry(ctx, func() error {
		result, err := g.client.Complete(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return &common.RetryableError{Err: err, Retryable: false}
			}
			g.logger.Warn("completion attempt failed", "error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}
		completion = result
		return nil
	}, g.retryOpts)

	if err != nil {
		return Completion{}, fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
	}

	return completion, nil
}
