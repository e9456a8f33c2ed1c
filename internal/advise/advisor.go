// Package advise asks the model gateway for filename and folder-path
// suggestions. Suggestions are advisory: they are sanitized here, and the
// final choice belongs to a confirmation collaborator.
package advise

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mjanssen/docflow/internal/llm"
	"github.com/mjanssen/docflow/internal/sanitize"
)

// Advisor produces sanitized naming suggestions backed by the model gateway.
type Advisor struct {
	gateway        llm.Client
	logger         *slog.Logger
	maxPromptChars int
	maxNameChars   int
}

// New creates an advisor. gateway may be nil, in which case every suggestion
// is the fallback value.
func New(gateway llm.Client, maxPromptChars, maxNameChars int, logger *slog.Logger) *Advisor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxPromptChars <= 0 {
		maxPromptChars = 4000
	}
	if maxNameChars <= 0 {
		maxNameChars = 60
	}
	return &Advisor{
		gateway:        gateway,
		logger:         logger,
		maxPromptChars: maxPromptChars,
		maxNameChars:   maxNameChars,
	}
}

// OriginalBase returns the sanitized base name of a filename without its
// extension, the universal fallback for filename suggestions.
func OriginalBase(originalName string) string {
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	return sanitize.Segment(base)
}

func (a *Advisor) truncate(text string) string {
	runes := []rune(text)
	if len(runes) > a.maxPromptChars {
		return string(runes[:a.maxPromptChars])
	}
	return text
}
