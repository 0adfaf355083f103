package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studypdf/studypdf/internal/prompt"
)

// Completer is the completion backend: prompt in, answer out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer reduces an over-budget document chunk by chunk, producing one
// labeled summary per chunk and combining them into a single digest.
type Summarizer struct {
	completer Completer
	log       *slog.Logger
}

func New(completer Completer, log *slog.Logger) *Summarizer {
	return &Summarizer{completer: completer, log: log}
}

// Summarize runs one completion call per chunk, in order, and joins the
// labeled results with blank lines. A failed chunk becomes an inline error
// marker for its section so the rest of the digest still assembles; no
// retries are attempted. Sections are numbered from 1 and their order is part
// of the output contract. Context cancellation is checked between chunk calls
// (the only suspension points) and aborts the whole digest.
func (s *Summarizer) Summarize(ctx context.Context, chunks []string) (string, error) {
	sections := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		summary, err := s.completer.Complete(ctx, prompt.Section(chunk))
		if err != nil {
			s.log.Warn("section summary failed", "section", i+1, "error", err)
			sections = append(sections, fmt.Sprintf("**Section %d:** Error - %s", i+1, err))
			continue
		}
		sections = append(sections, fmt.Sprintf("**Section %d:**\n%s", i+1, summary))
	}
	return strings.Join(sections, "\n\n"), nil
}
