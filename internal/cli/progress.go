package cli

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/mjanssen/docflow/internal/organize"
)

// ProgressReporter renders run progress: a progress bar across files plus
// the pipeline's status messages.
type ProgressReporter struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
}

// NewProgressReporter creates a reporter writing to writer.
func NewProgressReporter(writer io.Writer) *ProgressReporter {
	return &ProgressReporter{writer: writer}
}

// Sink returns a ProgressFunc for the organizer. Messages are written
// immediately; the bar is sized by the scan event and advances on per-file
// outcomes.
func (r *ProgressReporter) Sink() organize.ProgressFunc {
	return func(ev organize.ProgressEvent) {
		switch ev.Kind {
		case organize.ProgressScan:
			if ev.Total > 0 {
				r.bar = progressbar.NewOptions(ev.Total,
					progressbar.OptionSetWriter(r.writer),
					progressbar.OptionSetDescription("organizing"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			fmt.Fprintln(r.writer, SubtleStyle.Render(ev.Message))
		case organize.ProgressMoved, organize.ProgressPlanned:
			if r.bar != nil {
				_ = r.bar.Add(1)
			}
			fmt.Fprintln(r.writer, SuccessStyle.Render(ev.Message))
		case organize.ProgressError:
			if r.bar != nil {
				_ = r.bar.Add(1)
			}
			fmt.Fprintln(r.writer, ErrorStyle.Render(ev.Message))
		case organize.ProgressWarning, organize.ProgressCanceled:
			fmt.Fprintln(r.writer, WarningStyle.Render(ev.Message))
		default:
			fmt.Fprintln(r.writer, SubtleStyle.Render(ev.Message))
		}
	}
}

// Summary renders the final run statistics.
func (r *ProgressReporter) Summary(stats organize.Stats, canceled bool) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}

	fmt.Fprintln(r.writer)
	if canceled {
		fmt.Fprintln(r.writer, WarningStyle.Render("Run canceled"))
	}
	fmt.Fprintf(r.writer, "%s %d processed, %d moved",
		BoldStyle.Render("Result:"), stats.Processed, stats.Moved)
	if stats.TokensUsed > 0 {
		fmt.Fprintf(r.writer, " (%d tokens)", stats.TokensUsed)
	}
	fmt.Fprintln(r.writer)
}
