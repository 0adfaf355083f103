package processor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/studypdf/studypdf/internal/chunker"
	"github.com/studypdf/studypdf/internal/prompt"
	"github.com/studypdf/studypdf/internal/relevance"
	"github.com/studypdf/studypdf/internal/summarize"
)

// Strategy identifies which reduction path produced an answer.
type Strategy string

const (
	StrategyDirect    Strategy = "direct"
	StrategySummarize Strategy = "progressive_summary"
	StrategyRelevance Strategy = "relevant_excerpt"
)

// Completer is the completion backend consumed by the processor.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one question against one document.
type Result struct {
	Answer   string
	Reduced  bool
	Strategy Strategy

	// Advisory data from the summarization path: how many chunks the
	// document produced and how many were actually summarized.
	TotalChunks      int
	SummarizedChunks int
}

// Truncated reports whether the summarization chunk cap dropped later
// document sections.
func (r Result) Truncated() bool {
	return r.TotalChunks > r.SummarizedChunks
}

// SummaryKeywords is the default substring test for classifying a query as a
// whole-document summarization request. A heuristic, not a semantic
// classifier.
var SummaryKeywords = []string{"summarize", "summary", "overview", "flashcard"}

// IsSummaryQuery reports whether the lower-cased query contains any of the
// summary keywords.
func IsSummaryQuery(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range SummaryKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Processor decides how to fit a document into the completion backend's
// token budget: send it whole, summarize it progressively, or extract the
// paragraphs relevant to the question.
type Processor struct {
	completer  Completer
	summarizer *summarize.Summarizer
	log        *slog.Logger

	maxTokens        int
	maxSummaryChunks int

	// summaryQuery classifies queries for strategy selection. Injectable so
	// the keyword list can be replaced or tested independently.
	summaryQuery func(string) bool
}

// Option customizes a Processor.
type Option func(*Processor)

// WithSummaryClassifier replaces the default keyword-based query classifier.
func WithSummaryClassifier(fn func(string) bool) Option {
	return func(p *Processor) { p.summaryQuery = fn }
}

// New builds a Processor. maxTokens bounds every unit of text sent to the
// backend; maxSummaryChunks caps how many chunks the summarization path will
// process.
func New(completer Completer, log *slog.Logger, maxTokens, maxSummaryChunks int, opts ...Option) *Processor {
	p := &Processor{
		completer:        completer,
		summarizer:       summarize.New(completer, log),
		log:              log,
		maxTokens:        maxTokens,
		maxSummaryChunks: maxSummaryChunks,
		summaryQuery:     IsSummaryQuery,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process answers query against fullText. Documents within the token budget
// go to the backend whole; over-budget documents are reduced first, either by
// progressive summarization (summary-style queries) or by relevance excerpt
// (specific questions). Completion failures surface unmodified as the single
// error of the invocation; no retries.
func (p *Processor) Process(ctx context.Context, fullText, query string, mode prompt.Mode) (Result, error) {
	estimated := chunker.EstimateTokens(fullText)

	if estimated <= p.maxTokens {
		answer, err := p.completer.Complete(ctx, prompt.Build(mode, fullText, query, false))
		if err != nil {
			return Result{}, err
		}
		return Result{Answer: answer, Strategy: StrategyDirect}, nil
	}

	if p.summaryQuery(query) {
		return p.summarizePath(ctx, fullText, query, mode, estimated)
	}

	relevant := relevance.FindRelevantContext(fullText, query, p.maxTokens)
	answer, err := p.completer.Complete(ctx, prompt.Build(mode, relevant, query, true))
	if err != nil {
		return Result{}, err
	}
	return Result{Answer: answer, Reduced: true, Strategy: StrategyRelevance}, nil
}

func (p *Processor) summarizePath(ctx context.Context, fullText, query string, mode prompt.Mode, estimated int) (Result, error) {
	chunks := chunker.ChunkText(fullText, p.maxTokens)
	total := len(chunks)
	if total > p.maxSummaryChunks {
		// Later sections are dropped; reported to the caller as advisory
		// data, not an error.
		p.log.Info("capping summarization input",
			"total_chunks", total,
			"cap", p.maxSummaryChunks,
			"estimated_tokens", estimated,
		)
		chunks = chunks[:p.maxSummaryChunks]
	}

	digest, err := p.summarizer.Summarize(ctx, chunks)
	if err != nil {
		return Result{}, err
	}

	answer, err := p.completer.Complete(ctx, prompt.Build(mode, digest, query, true))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Answer:           answer,
		Reduced:          true,
		Strategy:         StrategySummarize,
		TotalChunks:      total,
		SummarizedChunks: len(chunks),
	}, nil
}
