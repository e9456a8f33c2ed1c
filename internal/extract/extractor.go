// Package extract converts files into plain text for classification.
//
// Extraction failure is never fatal: a file that cannot be read yields empty
// text, which downstream classification treats as "no signal".
package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// Extractor converts a single file into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Registry dispatches extraction by file extension. PDF, DOCX and OCR
// extractors are external collaborators registered by the caller; anything
// unregistered yields empty text.
type Registry struct {
	extractors    map[string]Extractor
	logger        *slog.Logger
	minTextLength int
}

// NewRegistry creates a registry with the built-in plain-text extractor
// registered for .txt, .md and .csv. Text shorter than minTextLength is
// treated as no signal.
func NewRegistry(minTextLength int, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		extractors:    make(map[string]Extractor),
		logger:        logger,
		minTextLength: minTextLength,
	}

	text := NewTextExtractor(0)
	for _, ext := range []string{".txt", ".md", ".csv"} {
		r.Register(ext, text)
	}

	return r
}

// Register binds an extractor to a file extension (with or without the
// leading dot). Later registrations replace earlier ones.
func (r *Registry) Register(ext string, extractor Extractor) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.extractors[ext] = extractor
}

// Extract returns the plain text of the file at path, or "" when no
// extractor is registered for its extension, extraction fails, or the result
// is below the minimum useful length.
func (r *Registry) Extract(ctx context.Context, path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	extractor, ok := r.extractors[ext]
	if !ok {
		r.logger.Debug("no extractor for extension", "extension", ext, "path", path)
		return ""
	}

	text, err := extractor.Extract(ctx, path)
	if err != nil {
		r.logger.Warn("text extraction failed", "path", path, "error", err)
		return ""
	}

	text = strings.TrimSpace(text)
	if len(text) < r.minTextLength {
		return ""
	}
	return text
}
