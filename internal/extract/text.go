package extract

import (
	"context"
	"fmt"
	"io"
	"os"
)

// defaultMaxBytes caps how much of a file the plain-text extractor reads.
const defaultMaxBytes = 1 << 20 // 1 MiB

// TextExtractor reads plain-text files directly.
type TextExtractor struct {
	maxBytes int64
}

// NewTextExtractor creates a plain-text extractor reading at most maxBytes
// from a file. Zero means the default cap.
func NewTextExtractor(maxBytes int64) *TextExtractor {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &TextExtractor{maxBytes: maxBytes}
}

// Extract reads the file contents as text.
func (e *TextExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, e.maxBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}
