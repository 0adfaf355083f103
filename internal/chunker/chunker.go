package chunker

import "strings"

// ChunkText splits text into an ordered sequence of word-aligned chunks, each
// sized to fit within maxTokens (estimated). Words are never split: a single
// word longer than the whole budget becomes its own oversized chunk rather
// than an error. Joining the chunks with single spaces reproduces the
// document's word sequence; original inter-word whitespace is not preserved.
func ChunkText(text string, maxTokens int) []string {
	maxChars := maxTokens * 4
	words := strings.Fields(text)

	var chunks []string
	var current []string
	currentLen := 0

	for _, word := range words {
		wordLen := len(word) + 1 // plus the joining space
		if currentLen+wordLen > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentLen = wordLen
		} else {
			current = append(current, word)
			currentLen += wordLen
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
