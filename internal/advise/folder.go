package advise

import (
	"context"
	"fmt"
	"strings"

	"github.com/mjanssen/docflow/internal/sanitize"
)

// placeholderAnswers are responses that mean "no suggestion".
var placeholderAnswers = map[string]bool{
	"":         true,
	"n/a":      true,
	"na":       true,
	"none":     true,
	"geen":     true,
	"onbekend": true,
	"unknown":  true,
}

// SuggestFolderPath asks the model for a complete relative destination path
// and sanitizes the answer. The predefined hint is offered as inspiration
// and wins whenever the suggestion is unusable or ambiguous. The second
// return value is the tokens spent.
func (a *Advisor) SuggestFolderPath(ctx context.Context, text, categoryKey, hint string) (string, int) {
	fallback := sanitize.RelativePath(hint)

	if a.gateway == nil || strings.TrimSpace(text) == "" {
		return fallback, 0
	}

	prompt := fmt.Sprintf(`Propose a relative folder path for filing this document in a personal archive.

The document was classified as: %s
The default location for this category is: %s

You may propose a more specific path (for example adding a year or subject
subfolder) or a different one entirely if it fits the document better.

Document text:
%s

Instructions:
1. Respond with ONLY the relative folder path, nothing else.
2. Separate folders with forward slashes.
3. Do not include a filename or a leading slash.`,
		categoryKey,
		hint,
		a.truncate(text))

	completion, err := a.gateway.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Warn("folder suggestion failed, using predefined path", "error", err)
		}
		return fallback, 0
	}

	raw := strings.TrimSpace(completion.Text)
	if placeholderAnswers[strings.ToLower(raw)] {
		return fallback, completion.TokensUsed
	}

	suggestion := sanitize.RelativePath(raw)
	if suggestion == sanitize.DefaultPathLabel {
		// Sanitized away to nothing; predefined path wins.
		return fallback, completion.TokensUsed
	}

	return suggestion, completion.TokensUsed
}
