// Package organize implements the file organization pipeline: walking a
// source tree, classifying each document, resolving a conflict-free
// destination, moving the file and optionally writing a metadata sidecar.
package organize

import "context"

// ProgressKind identifies the pipeline stage a progress event reports on.
type ProgressKind int

const (
	// ProgressScan reports the number of files found; Total carries the count.
	ProgressScan ProgressKind = iota
	// ProgressStep reports an intermediate per-file status.
	ProgressStep
	// ProgressMoved reports a completed move.
	ProgressMoved
	// ProgressPlanned reports a dry-run planned move.
	ProgressPlanned
	// ProgressError reports a per-file failure that left the file in place.
	ProgressError
	// ProgressWarning reports a non-fatal problem after a successful move.
	ProgressWarning
	// ProgressCanceled reports run cancellation.
	ProgressCanceled
)

// ProgressEvent is a structured status update from the pipeline. Message is
// ready for display; Kind and Total let sinks drive richer UI without
// parsing it.
type ProgressEvent struct {
	Kind    ProgressKind
	Total   int
	Message string
}

// ProgressFunc receives progress events during a run. The pipeline never
// blocks on it; a nil sink is valid.
type ProgressFunc func(ev ProgressEvent)

// FilenameConfirmer decides the final base filename given the original and
// the suggested name. Implementations may ask a human, apply a policy, or
// simply echo the suggestion.
type FilenameConfirmer func(ctx context.Context, original, suggested string, progress ProgressFunc) (string, error)

// FolderConfirmer decides the final relative folder path given the
// predefined category path and the suggested one.
type FolderConfirmer func(ctx context.Context, predefined, suggested string, progress ProgressFunc) (string, error)

// Classifier resolves document text to a category key. Implementations are
// total: the returned key is always present in the category map.
type Classifier interface {
	Classify(ctx context.Context, text string) (categoryKey string, tokensUsed int)
}

// NameAdvisor produces sanitized filename and folder-path suggestions.
type NameAdvisor interface {
	SuggestFilename(ctx context.Context, text, originalName, categoryKey string) (string, int)
	SuggestFolderPath(ctx context.Context, text, categoryKey, hint string) (string, int)
}

// TextExtractor converts a file into plain text, yielding "" when the file
// carries no usable signal.
type TextExtractor interface {
	Extract(ctx context.Context, path string) string
}

// Stats summarizes a run. Processed counts files the pipeline ran to
// completion; Moved counts files that actually landed in the destination
// tree. A file in flight when the run is canceled counts in neither.
type Stats struct {
	Processed  int
	Moved      int
	TokensUsed int
}
