package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// scriptedCompleter returns canned responses (or errors) per call, in order.
type scriptedCompleter struct {
	calls   int
	prompts []string
	respond func(call int, prompt string) (string, error)
}

func (f *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	call := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.respond(call, prompt)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSummarize_LabelsSectionsInOrder(t *testing.T) {
	completer := &scriptedCompleter{
		respond: func(call int, prompt string) (string, error) {
			return fmt.Sprintf("summary %d", call+1), nil
		},
	}
	s := New(completer, discardLogger())

	digest, err := s.Summarize(context.Background(), []string{"part a", "part b", "part c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "**Section 1:**\nsummary 1\n\n**Section 2:**\nsummary 2\n\n**Section 3:**\nsummary 3"
	if digest != want {
		t.Errorf("expected digest %q, got %q", want, digest)
	}
	if completer.calls != 3 {
		t.Errorf("expected 3 completion calls, got %d", completer.calls)
	}
}

func TestSummarize_EmbedsChunkInSectionPrompt(t *testing.T) {
	completer := &scriptedCompleter{
		respond: func(call int, prompt string) (string, error) { return "ok", nil },
	}
	s := New(completer, discardLogger())

	if _, err := s.Summarize(context.Background(), []string{"the chunk body"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(completer.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(completer.prompts))
	}
	p := completer.prompts[0]
	if !strings.Contains(p, "Summarize this section concisely") {
		t.Errorf("expected section instruction in prompt, got %q", p)
	}
	if !strings.Contains(p, "the chunk body") {
		t.Errorf("expected chunk text in prompt, got %q", p)
	}
}

func TestSummarize_FailedChunkBecomesInlineMarker(t *testing.T) {
	completer := &scriptedCompleter{
		respond: func(call int, prompt string) (string, error) {
			if call == 1 {
				return "", errors.New("backend unavailable")
			}
			return fmt.Sprintf("summary %d", call+1), nil
		},
	}
	s := New(completer, discardLogger())

	digest, err := s.Summarize(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("expected no error despite section failure, got %v", err)
	}

	sections := strings.Split(digest, "\n\n")
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d: %q", len(sections), digest)
	}
	if sections[0] != "**Section 1:**\nsummary 1" {
		t.Errorf("unexpected section 1: %q", sections[0])
	}
	if sections[1] != "**Section 2:** Error - backend unavailable" {
		t.Errorf("expected inline error marker for section 2, got %q", sections[1])
	}
	if sections[2] != "**Section 3:**\nsummary 3" {
		t.Errorf("unexpected section 3: %q", sections[2])
	}
}

func TestSummarize_NoChunks(t *testing.T) {
	completer := &scriptedCompleter{
		respond: func(call int, prompt string) (string, error) {
			t.Fatal("completer should not be called for zero chunks")
			return "", nil
		},
	}
	s := New(completer, discardLogger())

	digest, err := s.Summarize(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if digest != "" {
		t.Errorf("expected empty digest, got %q", digest)
	}
}

func TestSummarize_CancellationStopsBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	completer := &scriptedCompleter{
		respond: func(call int, prompt string) (string, error) {
			cancel() // cancel after the first call returns
			return "first", nil
		},
	}
	s := New(completer, discardLogger())

	_, err := s.Summarize(ctx, []string{"a", "b", "c"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if completer.calls != 1 {
		t.Errorf("expected summarization to stop after 1 call, got %d", completer.calls)
	}
}
