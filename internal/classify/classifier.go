// Package classify turns extracted document text into a definitive category
// key. It combines the model gateway, response normalization, and the
// deterministic heuristic fallback; the result is always a key present in
// the category map.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mjanssen/docflow/internal/heuristic"
	"github.com/mjanssen/docflow/internal/llm"
	"github.com/mjanssen/docflow/internal/model"
)

// Classifier resolves document text to a category key.
type Classifier struct {
	gateway        llm.Client
	matcher        *heuristic.Matcher
	categories     *model.CategoryMap
	logger         *slog.Logger
	maxPromptChars int
}

// New creates a classifier. gateway may be nil, in which case classification
// is purely heuristic.
func New(gateway llm.Client, matcher *heuristic.Matcher, categories *model.CategoryMap, maxPromptChars int, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if maxPromptChars <= 0 {
		maxPromptChars = 4000
	}
	return &Classifier{
		gateway:        gateway,
		matcher:        matcher,
		categories:     categories,
		logger:         logger,
		maxPromptChars: maxPromptChars,
	}
}

// Classify returns a category key present in the category map, plus the
// tokens spent on the model call (zero when the model was skipped or failed).
// The function is total: any failure path lands on the heuristic match or
// the fallback key.
func (c *Classifier) Classify(ctx context.Context, text string) (string, int) {
	if strings.TrimSpace(text) == "" {
		// Nothing extracted, nothing to ask the model.
		return c.heuristicOrFallback(text), 0
	}

	if c.gateway == nil {
		return c.heuristicOrFallback(text), 0
	}

	completion, err := c.gateway.Complete(ctx, c.buildPrompt(text))
	if err != nil {
		// A canceled run is not a provider failure; the caller sees ctx.Err()
		// and discards the result.
		if ctx.Err() == nil {
			c.logger.Warn("model classification failed, falling back", "error", err)
		}
		return c.heuristicOrFallback(text), 0
	}

	if key, ok := c.matchResponse(completion.Text); ok {
		c.logger.Info("document classified",
			"category", key,
			"tokens", completion.TokensUsed)
		return key, completion.TokensUsed
	}

	c.logger.Warn("unusable model response, falling back",
		"response", model.Preview(completion.Text))
	return c.heuristicOrFallback(text), completion.TokensUsed
}

// matchResponse normalizes a raw completion and matches it against the
// category map, case-insensitively.
func (c *Classifier) matchResponse(raw string) (string, bool) {
	normalized := NormalizeResponse(raw)
	if normalized == "" {
		return "", false
	}

	for _, key := range c.categories.Keys() {
		if strings.EqualFold(normalized, key) {
			return key, true
		}
	}
	return "", false
}

func (c *Classifier) heuristicOrFallback(text string) string {
	if c.matcher != nil {
		if key, ok := c.matcher.Match(text); ok && c.categories.Contains(key) {
			c.logger.Info("document classified by heuristic", "category", key)
			return key
		}
	}
	return c.categories.Fallback()
}

// buildPrompt creates the classification prompt, truncating document text to
// the configured character budget.
func (c *Classifier) buildPrompt(text string) string {
	categoryList := ""
	for _, key := range c.categories.Keys() {
		categoryList += fmt.Sprintf("- %s\n", key)
	}

	runes := []rune(text)
	if len(runes) > c.maxPromptChars {
		text = string(runes[:c.maxPromptChars])
	}

	return fmt.Sprintf(`Classify this document into exactly one of the categories below.

Categories:
%s
Document text:
%s

Instructions:
1. Choose the single best matching category from the list above.
2. Respond with ONLY the category name, exactly as written in the list.
3. If nothing fits, respond with: %s`,
		categoryList,
		text,
		c.categories.Fallback())
}
