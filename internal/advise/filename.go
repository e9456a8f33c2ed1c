package advise

import (
	"context"
	"fmt"
	"strings"

	"github.com/mjanssen/docflow/internal/sanitize"
)

// SuggestFilename asks the model for a descriptive base filename (no
// extension) and sanitizes the answer. On any failure the sanitized original
// base name is returned. The second return value is the tokens spent.
func (a *Advisor) SuggestFilename(ctx context.Context, text, originalName, categoryKey string) (string, int) {
	fallback := OriginalBase(originalName)

	if a.gateway == nil || strings.TrimSpace(text) == "" {
		return fallback, 0
	}

	prompt := fmt.Sprintf(`Propose a concise, descriptive filename for this document.

The document was classified as: %s
Its current filename is: %s

Document text:
%s

Instructions:
1. Respond with ONLY the proposed filename, nothing else.
2. Do not include a file extension.
3. Use at most %d characters.
4. Use only letters, digits, underscores and hyphens.`,
		categoryKey,
		originalName,
		a.truncate(text),
		a.maxNameChars)

	completion, err := a.gateway.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Warn("filename suggestion failed, keeping original", "error", err)
		}
		return fallback, 0
	}

	suggestion := sanitize.Segment(strings.TrimSpace(completion.Text))
	if suggestion == sanitize.PlaceholderSegment {
		a.logger.Warn("filename suggestion sanitized to nothing, keeping original",
			"raw", completion.Text)
		return fallback, completion.TokensUsed
	}

	if runes := []rune(suggestion); len(runes) > a.maxNameChars {
		suggestion = strings.Trim(string(runes[:a.maxNameChars]), "_. ")
		if suggestion == "" {
			return fallback, completion.TokensUsed
		}
	}

	return suggestion, completion.TokensUsed
}
