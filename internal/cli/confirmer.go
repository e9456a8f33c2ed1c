package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mjanssen/docflow/internal/organize"
)

// Confirmer implements interactive filename and folder-path confirmation on
// a terminal. A non-interactive caller should use the Accept* helpers
// instead.
type Confirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConfirmer creates a confirmer reading from reader and writing to
// writer. Nil arguments default to stdin/stdout.
func NewConfirmer(reader io.Reader, writer io.Writer) *Confirmer {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Confirmer{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// ConfirmFilename asks the user to accept the suggested base name, keep the
// original, or type a custom one.
func (c *Confirmer) ConfirmFilename(ctx context.Context, original, suggested string, _ organize.ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if original == suggested {
		return original, nil
	}

	fmt.Fprintln(c.writer, TitleStyle.Render("Filename"))
	fmt.Fprintf(c.writer, "  Original:  %s\n", SubtleStyle.Render(original))
	fmt.Fprintf(c.writer, "  Suggested: %s\n", SuccessStyle.Render(suggested))
	fmt.Fprint(c.writer, "[A]ccept suggestion, [K]eep original, or type a custom name: ")

	answer, err := c.readLine()
	if err != nil {
		return "", err
	}

	switch strings.ToLower(answer) {
	case "", "a", "accept":
		return suggested, nil
	case "k", "keep":
		return original, nil
	default:
		return answer, nil
	}
}

// ConfirmFolderPath asks the user to accept the suggested path or keep the
// predefined one.
func (c *Confirmer) ConfirmFolderPath(ctx context.Context, predefined, suggested string, _ organize.ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if predefined == suggested {
		return predefined, nil
	}

	fmt.Fprintln(c.writer, TitleStyle.Render("Destination folder"))
	fmt.Fprintf(c.writer, "  Predefined: %s\n", SubtleStyle.Render(predefined))
	fmt.Fprintf(c.writer, "  Suggested:  %s\n", SuccessStyle.Render(suggested))
	fmt.Fprint(c.writer, "[A]ccept suggestion, [K]eep predefined, or type a custom path: ")

	answer, err := c.readLine()
	if err != nil {
		return "", err
	}

	switch strings.ToLower(answer) {
	case "", "a", "accept":
		return suggested, nil
	case "k", "keep":
		return predefined, nil
	default:
		return answer, nil
	}
}

func (c *Confirmer) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AcceptFilename is the non-interactive filename policy: the suggestion wins.
func AcceptFilename(_ context.Context, _, suggested string, _ organize.ProgressFunc) (string, error) {
	return suggested, nil
}

// AcceptFolderPath is the non-interactive folder policy: the suggestion wins.
func AcceptFolderPath(_ context.Context, _, suggested string, _ organize.ProgressFunc) (string, error) {
	return suggested, nil
}
