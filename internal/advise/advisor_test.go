package advise

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mjanssen/docflow/internal/llm"
	"github.com/mjanssen/docflow/internal/sanitize"
)

type mockGateway struct {
	completion llm.Completion
	err        error
	prompt     string
	calls      int
}

func (m *mockGateway) Complete(_ context.Context, prompt string) (llm.Completion, error) {
	m.calls++
	m.prompt = prompt
	if m.err != nil {
		return llm.Completion{}, m.err
	}
	return m.completion, nil
}

func TestSuggestFilename(t *testing.T) {
	gw := &mockGateway{completion: llm.Completion{Text: "bankafschrift_maart_2023", TokensUsed: 30}}
	a := New(gw, 0, 0, nil)

	name, tokens := a.SuggestFilename(context.Background(), "rekeningoverzicht maart", "scan0001.pdf", "Bankafschriften")
	assert.Equal(t, "bankafschrift_maart_2023", name)
	assert.Equal(t, 30, tokens)
	assert.Contains(t, gw.prompt, "Bankafschriften")
	assert.Contains(t, gw.prompt, "scan0001.pdf")
}

func TestSuggestFilenameSanitizesResponse(t *testing.T) {
	gw := &mockGateway{completion: llm.Completion{Text: `bank/afschrift: "maart"`}}
	a := New(gw, 0, 0, nil)

	name, _ := a.SuggestFilename(context.Background(), "tekst", "scan.pdf", "Bankafschriften")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, `"`)
	assert.NotEmpty(t, name)
}

func TestSuggestFilenameGatewayErrorKeepsOriginal(t *testing.T) {
	gw := &mockGateway{err: errors.New("timeout")}
	a := New(gw, 0, 0, nil)

	name, tokens := a.SuggestFilename(context.Background(), "tekst", "Belangrijk Document.pdf", "Overig")
	assert.Equal(t, "Belangrijk_Document", name)
	assert.Zero(t, tokens)
}

func TestSuggestFilenameUnusableResponseKeepsOriginal(t *testing.T) {
	gw := &mockGateway{completion: llm.Completion{Text: "???///"}}
	a := New(gw, 0, 0, nil)

	name, _ := a.SuggestFilename(context.Background(), "tekst", "origineel.txt", "Overig")
	assert.Equal(t, "origineel", name)
}

func TestSuggestFilenameEmptyTextSkipsModel(t *testing.T) {
	gw := &mockGateway{completion: llm.Completion{Text: "iets"}}
	a := New(gw, 0, 0, nil)

	name, _ := a.SuggestFilename(context.Background(), "", "origineel.txt", "Overig")
	assert.Equal(t, "origineel", name)
	assert.Zero(t, gw.calls)
}

func TestSuggestFilenameTruncatesLongSuggestion(t *testing.T) {
	gw := &mockGateway{completion: llm.Completion{Text: strings.Repeat("a", 200)}}
	a := New(gw, 0, 20, nil)

	name, _ := a.SuggestFilename(context.Background(), "tekst", "orig.txt", "Overig")
	assert.LessOrEqual(t, len([]rune(name)), 20)
	assert.NotEmpty(t, name)
}

func TestSuggestFolderPath(t *testing.T) {
	gw := &mockGateway{completion: llm.Completion{Text: "1._Financiën/1.01._Bankafschriften/2023", TokensUsed: 25}}
	a := New(gw, 0, 0, nil)

	path, tokens := a.SuggestFolderPath(context.Background(), "tekst", "Bankafschriften", "1._Financiën/1.01._Bankafschriften")
	assert.Equal(t, "1._Financiën/1.01._Bankafschriften/2023", path)
	assert.Equal(t, 25, tokens)
}

func TestSuggestFolderPathPlaceholderUsesHint(t *testing.T) {
	for _, answer := range []string{"", "n/a", "NONE", "geen", "Onbekend"} {
		gw := &mockGateway{completion: llm.Completion{Text: answer}}
		a := New(gw, 0, 0, nil)

		path, _ := a.SuggestFolderPath(context.Background(), "tekst", "Overig", "9._Overig")
		assert.Equal(t, "9._Overig", path, "answer %q", answer)
	}
}

func TestSuggestFolderPathGatewayErrorUsesHint(t *testing.T) {
	gw := &mockGateway{err: errors.New("unreachable")}
	a := New(gw, 0, 0, nil)

	path, _ := a.SuggestFolderPath(context.Background(), "tekst", "Facturen", "1._Financiën/1.02._Facturen")
	assert.Equal(t, "1._Financiën/1.02._Facturen", path)
}

func TestSuggestFolderPathSanitizedAwayUsesHint(t *testing.T) {
	gw := &mockGateway{completion: llm.Completion{Text: "///???///"}}
	a := New(gw, 0, 0, nil)

	path, _ := a.SuggestFolderPath(context.Background(), "tekst", "Overig", "9._Overig")
	assert.Equal(t, "9._Overig", path)
}

func TestSuggestFolderPathNilGateway(t *testing.T) {
	a := New(nil, 0, 0, nil)

	path, tokens := a.SuggestFolderPath(context.Background(), "tekst", "Overig", "9._Overig")
	assert.Equal(t, "9._Overig", path)
	assert.Zero(t, tokens)
}

func TestOriginalBase(t *testing.T) {
	assert.Equal(t, "verslag", OriginalBase("verslag.pdf"))
	assert.Equal(t, "mijn_document", OriginalBase("mijn document.docx"))
	assert.Equal(t, sanitize.PlaceholderSegment, OriginalBase(".pdf"))
}
