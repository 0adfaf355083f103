package prompt

// QuickActions maps preset action names to the query each one stands in for.
// The resolved query is passed into the pipeline as an explicit parameter,
// the same as free-form user input.
var QuickActions = map[string]string{
	"summarize":  "Summarize the document, focusing on key contributions, methods, results, and limitations.",
	"flashcards": "Generate 10 concise Q&A flashcards from this document.",
	"quiz":       "Create a 5-question multiple-choice quiz based on the document.",
}

// ResolveQuickAction returns the preset query for a quick-action name.
func ResolveQuickAction(name string) (string, bool) {
	q, ok := QuickActions[name]
	return q, ok
}
