package chunker

// EstimateTokens approximates the token count of text using the ~4 chars/token
// ratio for English. Exact tokenization is not required; every budget
// comparison in the service uses this same estimate so chunk and context
// sizes stay mutually consistent.
func EstimateTokens(text string) int {
	return len(text) / 4
}
