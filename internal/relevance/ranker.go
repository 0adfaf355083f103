package relevance

import (
	"regexp"
	"sort"
	"strings"

	"github.com/studypdf/studypdf/internal/chunker"
)

var wordPattern = regexp.MustCompile(`\w+`)

// scoredParagraph pairs a paragraph with its query-term occurrence count.
type scoredParagraph struct {
	score int
	text  string
}

// QueryTerms extracts the lower-cased word tokens of query longer than three
// characters. The length cutoff stands in for a stop-word list.
func QueryTerms(query string) []string {
	words := wordPattern.FindAllString(strings.ToLower(query), -1)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 3 {
			terms = append(terms, w)
		}
	}
	return terms
}

// FindRelevantContext assembles the paragraphs of text most relevant to query
// into a context string whose character length stays within maxTokens*4.
// Relevance is a plain case-insensitive substring count of query terms per
// paragraph; paragraphs with no matches are excluded, and equal scores keep
// document order. When nothing matches at all, the document head is used
// instead so the caller always gets usable context.
func FindRelevantContext(text, query string, maxTokens int) string {
	terms := QueryTerms(query)

	var scored []scoredParagraph
	for _, para := range splitParagraphs(text) {
		lower := strings.ToLower(para)
		score := 0
		for _, term := range terms {
			score += strings.Count(lower, term)
		}
		if score > 0 {
			scored = append(scored, scoredParagraph{score: score, text: para})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	maxChars := maxTokens * 4
	var context strings.Builder
	for _, sp := range scored {
		if context.Len()+len(sp.text)+2 >= maxChars {
			break
		}
		context.WriteString(sp.text)
		context.WriteString("\n\n")
	}

	result := strings.TrimSpace(context.String())
	if result == "" {
		result = fallbackContext(text, maxTokens, maxChars)
	}
	return result
}

// fallbackContext covers queries with no scoring paragraphs: take the first
// budget-sized chunk of the document, or a raw truncation if chunking yields
// nothing.
func fallbackContext(text string, maxTokens, maxChars int) string {
	if chunks := chunker.ChunkText(text, maxTokens); len(chunks) > 0 {
		return strings.TrimSpace(chunks[0])
	}
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return strings.TrimSpace(text)
}

// splitParagraphs splits on blank-line boundaries, dropping empties.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	paras := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}
