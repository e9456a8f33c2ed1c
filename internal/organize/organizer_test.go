package organize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjanssen/docflow/internal/config"
	"github.com/mjanssen/docflow/internal/model"
)

// fileExtractor reads any file's bytes as text.
type fileExtractor struct{}

func (fileExtractor) Extract(_ context.Context, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// keywordClassifier is a total classifier keyed on simple substrings.
type keywordClassifier struct {
	categories *model.CategoryMap
	calls      int
	onClassify func(calls int)
}

func (c *keywordClassifier) Classify(_ context.Context, text string) (string, int) {
	c.calls++
	if c.onClassify != nil {
		c.onClassify(c.calls)
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "bankafschrift"):
		return "Bankafschriften", 10
	case strings.Contains(lower, "factuur"):
		return "Facturen", 10
	default:
		return c.categories.Fallback(), 0
	}
}

// fixedAdvisor returns canned suggestions.
type fixedAdvisor struct {
	filename string
	folder   string
}

func (a *fixedAdvisor) SuggestFilename(_ context.Context, _, originalName, _ string) (string, int) {
	if a.filename == "" {
		return strings.TrimSuffix(originalName, filepath.Ext(originalName)), 0
	}
	return a.filename, 5
}

func (a *fixedAdvisor) SuggestFolderPath(_ context.Context, _, _, hint string) (string, int) {
	if a.folder == "" {
		return hint, 0
	}
	return a.folder, 5
}

// cancelingAdvisor cancels the run while its suggestion is in flight and
// falls back, as the real advisor does when the context dies mid-request.
type cancelingAdvisor struct {
	cancel context.CancelFunc
}

func (a *cancelingAdvisor) SuggestFilename(_ context.Context, _, originalName, _ string) (string, int) {
	a.cancel()
	return strings.TrimSuffix(originalName, filepath.Ext(originalName)), 0
}

func (a *cancelingAdvisor) SuggestFolderPath(_ context.Context, _, _, hint string) (string, int) {
	return hint, 0
}

func testCategories(t *testing.T) *model.CategoryMap {
	t.Helper()
	m, err := model.NewCategoryMap([]model.Category{
		{Key: "Bankafschriften", Path: "1._Financiën/1.01._Bankafschriften"},
		{Key: "Facturen", Path: "1._Financiën/1.02._Facturen"},
		{Key: "Overig", Path: "9._Overig"},
	}, "Overig")
	require.NoError(t, err)
	return m
}

func testConfig(t *testing.T) *config.RunConfig {
	t.Helper()
	return &config.RunConfig{
		Extensions: map[string]bool{".txt": true, ".pdf": true},
		Recursive:  true,
		Categories: testCategories(t),
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOrganizeMovesClassifiedFile(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "bijgaand het bankafschrift van maart")

	cfg := testConfig(t)
	var events []ProgressEvent
	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil,
		WithProgress(func(ev ProgressEvent) { events = append(events, ev) }))

	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Moved)
	assert.Equal(t, 10, stats.TokensUsed)

	// Original name retained: renaming is disabled.
	moved := filepath.Join(dest, "1._Financiën", "1.01._Bankafschriften", "scan.txt")
	assert.FileExists(t, moved)
	assert.NoFileExists(t, filepath.Join(source, "scan.txt"))

	require.NotEmpty(t, events)
	assert.Equal(t, ProgressScan, events[0].Kind)
	assert.Equal(t, 1, events[0].Total)
	kinds := make(map[ProgressKind]bool)
	for _, ev := range events {
		kinds[ev.Kind] = true
	}
	assert.True(t, kinds[ProgressMoved])
}

func TestOrganizeUnclassifiableFileGoesToFallback(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "raadsel.txt", "tekst zonder herkenbare inhoud")

	cfg := testConfig(t)
	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)

	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Moved)
	assert.FileExists(t, filepath.Join(dest, "9._Overig", "raadsel.txt"))
}

func TestOrganizeDuplicateSuggestionsGetSuffixed(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "a.txt", "factuur nummer een")
	writeSource(t, source, "b.txt", "factuur nummer twee")

	cfg := testConfig(t)
	cfg.RenameFiles = true
	cfg.DescriptiveNames = true

	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories},
		&fixedAdvisor{filename: "invoice"})

	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Moved)

	folder := filepath.Join(dest, "1._Financiën", "1.02._Facturen")
	assert.FileExists(t, filepath.Join(folder, "invoice.txt"))
	assert.FileExists(t, filepath.Join(folder, "invoice_1.txt"))
}

func TestOrganizeRerunNeverClobbers(t *testing.T) {
	dest := t.TempDir()

	for i := 0; i < 2; i++ {
		source := t.TempDir()
		writeSource(t, source, "scan.txt", "bankafschrift periode")

		cfg := testConfig(t)
		o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)
		_, err := o.Organize(context.Background(), source, dest)
		require.NoError(t, err)
	}

	folder := filepath.Join(dest, "1._Financiën", "1.01._Bankafschriften")
	assert.FileExists(t, filepath.Join(folder, "scan.txt"))
	assert.FileExists(t, filepath.Join(folder, "scan_1.txt"))
}

func TestOrganizeCancellationReturnsPartialStats(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt", "g.txt", "h.txt", "i.txt", "j.txt"} {
		writeSource(t, source, name, "bankafschrift inhoud")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	classifier := &keywordClassifier{categories: cfg.Categories}
	classifier.onClassify = func(calls int) {
		if calls == 3 {
			cancel()
		}
	}

	o := New(cfg, fileExtractor{}, classifier, nil)
	stats, err := o.Organize(ctx, source, dest)

	require.ErrorIs(t, err, context.Canceled)

	// Cancellation landed during the third file's classification, so only
	// the first two completed; the in-flight file stays at the source.
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 2, stats.Moved)

	entries, readErr := os.ReadDir(source)
	require.NoError(t, readErr)
	assert.Len(t, entries, 8)
}

func TestOrganizeCancellationDuringModelCallLeavesFileUntouched(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "bankafschrift inhoud")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The run is canceled while the only file's classification is in
	// flight, as when an interrupt arrives mid-request.
	cfg := testConfig(t)
	classifier := &keywordClassifier{categories: cfg.Categories}
	classifier.onClassify = func(int) { cancel() }

	o := New(cfg, fileExtractor{}, classifier, nil)
	stats, err := o.Organize(ctx, source, dest)

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Processed)
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, filepath.Join(source, "scan.txt"))

	entries, readErr := os.ReadDir(dest)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestOrganizeCancellationDuringAdvisorCallLeavesFileUntouched(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "factuur maart")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	cfg.RenameFiles = true
	cfg.DescriptiveNames = true

	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories},
		&cancelingAdvisor{cancel: cancel})

	stats, err := o.Organize(ctx, source, dest)

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, filepath.Join(source, "scan.txt"))
}

func TestOrganizeMoveFailureLeavesFileInPlace(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "bankafschrift inhoud")

	// A file where the category folder should go makes MkdirAll fail.
	require.NoError(t, os.WriteFile(filepath.Join(dest, "1._Financiën"), []byte("x"), 0o600))

	cfg := testConfig(t)
	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)

	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, filepath.Join(source, "scan.txt"))
}

func TestOrganizeWritesMetadataSidecar(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "bankafschrift maart")

	cfg := testConfig(t)
	cfg.WriteMetadata = true

	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)
	_, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)

	sidecar := filepath.Join(dest, "1._Financiën", "1.01._Bankafschriften", "scan.metadata.json")
	assert.FileExists(t, sidecar)
}

func TestOrganizeSkipsSidecarsAndUnsupportedExtensions(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "bankafschrift")
	writeSource(t, source, "scan.metadata.json", "{}")
	writeSource(t, source, "program.exe", "binary")

	cfg := testConfig(t)
	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)

	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
}

func TestOrganizeNonRecursiveIgnoresSubdirectories(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "top.txt", "bankafschrift")
	require.NoError(t, os.MkdirAll(filepath.Join(source, "sub"), 0o755))
	writeSource(t, filepath.Join(source, "sub"), "nested.txt", "bankafschrift")

	cfg := testConfig(t)
	cfg.Recursive = false

	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)
	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.FileExists(t, filepath.Join(source, "sub", "nested.txt"))
}

func TestOrganizeSkipsDestinationNestedInSource(t *testing.T) {
	source := t.TempDir()
	dest := filepath.Join(source, "georganiseerd")
	writeSource(t, source, "scan.txt", "bankafschrift")

	cfg := testConfig(t)
	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)

	_, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)

	// A second run must not see the already-moved file.
	classifier := &keywordClassifier{categories: cfg.Categories}
	o = New(cfg, fileExtractor{}, classifier, nil)
	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.Zero(t, stats.Processed)
	assert.Zero(t, classifier.calls)
}

func TestOrganizeSourceMissing(t *testing.T) {
	cfg := testConfig(t)
	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil)

	_, err := o.Organize(context.Background(), filepath.Join(t.TempDir(), "bestaat-niet"), t.TempDir())
	assert.Error(t, err)
}

func TestOrganizeFilenameConfirmerDecides(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "factuur maart")

	cfg := testConfig(t)
	cfg.RenameFiles = true
	cfg.DescriptiveNames = true

	confirmer := func(_ context.Context, original, suggested string, _ ProgressFunc) (string, error) {
		assert.Equal(t, "scan", original)
		assert.Equal(t, "invoice", suggested)
		return "eigen_keuze", nil
	}

	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories},
		&fixedAdvisor{filename: "invoice"},
		WithFilenameConfirmer(confirmer))

	_, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "1._Financiën", "1.02._Facturen", "eigen_keuze.txt"))
}

func TestOrganizeFolderConfirmerErrorUsesPredefinedPath(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "factuur maart")

	cfg := testConfig(t)
	cfg.AISuggestedFolders = true

	confirmer := func(_ context.Context, _, _ string, _ ProgressFunc) (string, error) {
		return "", errors.New("geen antwoord")
	}

	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories},
		&fixedAdvisor{folder: "Ergens/Anders"},
		WithFolderConfirmer(confirmer))

	_, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "1._Financiën", "1.02._Facturen", "scan.txt"))
}

func TestOrganizeAISuggestedFolderApplied(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "factuur maart")

	cfg := testConfig(t)
	cfg.AISuggestedFolders = true

	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories},
		&fixedAdvisor{folder: "Administratie/2023"})

	_, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "Administratie", "2023", "scan.txt"))
}

func TestOrganizeDryRunMovesNothing(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeSource(t, source, "scan.txt", "bankafschrift")

	cfg := testConfig(t)
	var events []ProgressEvent
	o := New(cfg, fileExtractor{}, &keywordClassifier{categories: cfg.Categories}, nil,
		WithDryRun(true),
		WithProgress(func(ev ProgressEvent) { events = append(events, ev) }))

	stats, err := o.Organize(context.Background(), source, dest)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Processed)
	assert.Zero(t, stats.Moved)
	assert.FileExists(t, filepath.Join(source, "scan.txt"))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)

	var planned []ProgressEvent
	for _, ev := range events {
		if ev.Kind == ProgressPlanned {
			planned = append(planned, ev)
		}
	}
	require.Len(t, planned, 1)
	assert.Contains(t, planned[0].Message, "would move to")
}
