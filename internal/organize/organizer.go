package organize

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mjanssen/docflow/internal/advise"
	"github.com/mjanssen/docflow/internal/common"
	"github.com/mjanssen/docflow/internal/config"
	"github.com/mjanssen/docflow/internal/model"
	"github.com/mjanssen/docflow/internal/sanitize"
)

// Organizer runs the file organization pipeline. Files are processed one at
// a time: confirmation collaborators may wait on a human, and serializing
// keeps the destination resolver free of concurrent writers.
type Organizer struct {
	cfg             *config.RunConfig
	extractor       TextExtractor
	classifier      Classifier
	advisor         NameAdvisor
	metadata        *MetadataWriter
	resolver        *Resolver
	logger          *slog.Logger
	confirmFilename FilenameConfirmer
	confirmFolder   FolderConfirmer
	progress        ProgressFunc
	dryRun          bool
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithFilenameConfirmer installs a filename confirmation collaborator.
func WithFilenameConfirmer(c FilenameConfirmer) Option {
	return func(o *Organizer) { o.confirmFilename = c }
}

// WithFolderConfirmer installs a folder-path confirmation collaborator.
func WithFolderConfirmer(c FolderConfirmer) Option {
	return func(o *Organizer) { o.confirmFolder = c }
}

// WithProgress installs a progress message sink.
func WithProgress(p ProgressFunc) Option {
	return func(o *Organizer) { o.progress = p }
}

// WithDryRun makes the run report planned moves without touching the
// filesystem.
func WithDryRun(dryRun bool) Option {
	return func(o *Organizer) { o.dryRun = dryRun }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Organizer) { o.logger = logger }
}

// New creates an organizer. classifier must be total over its category map;
// advisor may be nil when neither descriptive names nor AI folders are
// enabled.
func New(cfg *config.RunConfig, extractor TextExtractor, classifier Classifier, advisor NameAdvisor, opts ...Option) *Organizer {
	o := &Organizer{
		cfg:        cfg,
		extractor:  extractor,
		classifier: classifier,
		advisor:    advisor,
		metadata:   NewMetadataWriter(),
		resolver:   NewResolver(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Organize processes every supported file under sourceDir into destDir.
// It fails fast when sourceDir does not exist; afterwards no single file's
// failure stops the run. Cancellation propagates immediately, even from
// inside a model call: the in-flight file is left untouched at the source
// and Organize returns partial statistics with context.Canceled.
func (o *Organizer) Organize(ctx context.Context, sourceDir, destDir string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return stats, fmt.Errorf("%w: %s", common.ErrSourceMissing, sourceDir)
	}

	files, err := o.collectFiles(sourceDir, destDir)
	if err != nil {
		return stats, fmt.Errorf("failed to scan source directory: %w", err)
	}

	o.scanned(len(files))

	for _, path := range files {
		select {
		case <-ctx.Done():
			o.report(ProgressCanceled, "Run canceled")
			return stats, ctx.Err()
		default:
		}

		moved, tokens, err := o.processFile(ctx, path, destDir)
		stats.TokensUsed += tokens
		if err != nil {
			o.report(ProgressCanceled, "Run canceled")
			return stats, err
		}

		stats.Processed++
		if moved {
			stats.Moved++
		}
	}

	o.report(ProgressStep, fmt.Sprintf("Done: %d processed, %d moved", stats.Processed, stats.Moved))
	return stats, nil
}

// collectFiles lists the supported files under sourceDir in walk order,
// skipping metadata sidecars and the destination subtree when it nests
// inside the source.
func (o *Organizer) collectFiles(sourceDir, destDir string) ([]string, error) {
	destAbs, err := filepath.Abs(destDir)
	if err != nil {
		destAbs = destDir
	}

	var files []string

	appendFile := func(path, name string) {
		if IsSidecar(name) {
			return
		}
		if !o.cfg.Supported(filepath.Ext(name)) {
			return
		}
		files = append(files, path)
	}

	if !o.cfg.Recursive {
		entries, err := os.ReadDir(sourceDir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			appendFile(filepath.Join(sourceDir, entry.Name()), entry.Name())
		}
		return files, nil
	}

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			o.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}
		if d.IsDir() {
			if abs, absErr := filepath.Abs(path); absErr == nil && abs == destAbs {
				return filepath.SkipDir
			}
			return nil
		}
		appendFile(path, d.Name())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// processFile runs the per-file state machine: extract, classify, resolve
// name and folder, move, write metadata. Any failure before the move forces
// the fallback category and the sanitized original name; only a failed move
// leaves the file in place. Cancellation is checked after every
// model-consuming step: a non-nil error means the run was canceled and the
// file was not touched.
func (o *Organizer) processFile(ctx context.Context, path, destDir string) (moved bool, tokens int, err error) {
	originalName := filepath.Base(path)
	ext := filepath.Ext(originalName)

	o.report(ProgressStep, fmt.Sprintf("Reading %s", originalName))
	text := o.extractor.Extract(ctx, path)
	if err := ctx.Err(); err != nil {
		return false, tokens, err
	}

	category, classifyTokens := o.classifier.Classify(ctx, text)
	tokens += classifyTokens
	if err := ctx.Err(); err != nil {
		return false, tokens, err
	}
	o.report(ProgressStep, fmt.Sprintf("%s → %s", originalName, category))

	baseName, nameTokens := o.resolveBaseName(ctx, text, originalName, category)
	tokens += nameTokens

	folderRel, folderTokens := o.resolveFolder(ctx, text, category)
	tokens += folderTokens

	if err := ctx.Err(); err != nil {
		return false, tokens, err
	}

	targetDir := filepath.Join(destDir, filepath.FromSlash(folderRel))

	if o.dryRun {
		planned := o.resolver.Plan(targetDir, baseName, ext)
		o.report(ProgressPlanned, fmt.Sprintf("[dry-run] %s would move to %s", originalName, planned))
		return false, tokens, nil
	}

	targetPath, err := o.resolver.Resolve(targetDir, baseName, ext)
	if err != nil {
		o.logger.Error("failed to prepare destination", "file", originalName, "error", err)
		o.report(ProgressError, fmt.Sprintf("Error: could not prepare destination for %s, leaving in place", originalName))
		return false, tokens, nil
	}

	if err := moveFile(path, targetPath); err != nil {
		o.logger.Error("failed to move file", "file", originalName, "target", targetPath, "error", err)
		o.report(ProgressError, fmt.Sprintf("Error: could not move %s, leaving in place", originalName))
		return false, tokens, nil
	}

	o.report(ProgressMoved, fmt.Sprintf("Moved %s to %s", originalName, targetPath))

	if o.cfg.WriteMetadata {
		record := model.ProcessingRecord{
			ProcessedAt:      time.Now().UTC(),
			OriginalPath:     path,
			OriginalFilename: originalName,
			Category:         category,
			TargetFolder:     folderRel,
			FinalFilename:    filepath.Base(targetPath),
			TextPreview:      model.Preview(text),
		}
		if baseName != advise.OriginalBase(originalName) {
			record.SuggestedFilename = baseName
		}
		if err := o.metadata.WriteRecord(targetPath, record); err != nil {
			// The move already happened; metadata failure is report-only.
			o.logger.Warn("failed to write metadata", "file", originalName, "error", err)
			o.report(ProgressWarning, fmt.Sprintf("Warning: metadata for %s not written", originalName))
		}
	}

	return true, tokens, nil
}

// resolveBaseName picks the destination base filename. Renaming disabled
// keeps the sanitized original; descriptive naming asks the advisor; a
// confirmation collaborator, when present, has the final word. Confirmation
// failure keeps the original name.
func (o *Organizer) resolveBaseName(ctx context.Context, text, originalName, category string) (string, int) {
	original := advise.OriginalBase(originalName)

	if !o.cfg.RenameFiles {
		return original, 0
	}

	suggested := original
	tokens := 0
	if o.cfg.DescriptiveNames && o.advisor != nil {
		suggested, tokens = o.advisor.SuggestFilename(ctx, text, originalName, category)
	}

	if o.confirmFilename == nil {
		return suggested, tokens
	}

	chosen, err := o.confirmFilename(ctx, original, suggested, o.progress)
	if err != nil {
		o.logger.Warn("filename confirmation failed, keeping original", "error", err)
		return original, tokens
	}

	chosen = sanitize.Segment(chosen)
	if chosen == sanitize.PlaceholderSegment && original != sanitize.PlaceholderSegment {
		return original, tokens
	}
	return chosen, tokens
}

// resolveFolder picks the relative destination folder. Without AI folder
// mode the category map's path is used directly. With it, the advisor's
// suggestion is offered to the confirmer; on any ambiguity or failure the
// predefined path wins.
func (o *Organizer) resolveFolder(ctx context.Context, text, category string) (string, int) {
	hint, ok := o.cfg.Categories.Path(category)
	if !ok {
		hint = o.cfg.Categories.FallbackPath()
	}
	predefined := sanitize.RelativePath(hint)

	if !o.cfg.AISuggestedFolders || o.advisor == nil {
		return predefined, 0
	}

	suggested, tokens := o.advisor.SuggestFolderPath(ctx, text, category, hint)

	if o.confirmFolder == nil {
		return suggested, tokens
	}

	chosen, err := o.confirmFolder(ctx, predefined, suggested, o.progress)
	if err != nil {
		o.logger.Warn("folder confirmation failed, using predefined path", "error", err)
		return predefined, tokens
	}

	chosen = sanitize.RelativePath(chosen)
	if chosen == sanitize.DefaultPathLabel && predefined != sanitize.DefaultPathLabel {
		return predefined, tokens
	}
	return chosen, tokens
}

func (o *Organizer) report(kind ProgressKind, msg string) {
	if o.progress != nil {
		o.progress(ProgressEvent{Kind: kind, Message: msg})
	}
}

func (o *Organizer) scanned(total int) {
	if o.progress != nil {
		o.progress(ProgressEvent{
			Kind:    ProgressScan,
			Total:   total,
			Message: fmt.Sprintf("Found %d file(s) to organize", total),
		})
	}
}

// moveFile renames src to dst, falling back to copy-and-remove across
// filesystem boundaries.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to finalize destination: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}
	return nil
}
