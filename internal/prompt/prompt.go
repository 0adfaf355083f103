package prompt

import "strings"

// Mode selects the instructional framing of the final prompt. The values are
// the exact strings the client presents as analysis modes.
type Mode string

const (
	ModeHomework   Mode = "Homework / Problem"
	ModeResearch   Mode = "Research Paper"
	ModeLecture    Mode = "Lecture / Notes"
	ModeFlashcards Mode = "Flashcards"
)

var modeInstructions = map[Mode]string{
	ModeHomework:   "Explain step-by-step. Give clear answers.",
	ModeResearch:   "Summarize methods, results, limitations precisely.",
	ModeLecture:    "Extract key points. Explain simply with examples.",
	ModeFlashcards: "Generate short Q&A flashcards.",
}

// Valid reports whether m is one of the four analysis modes.
func Valid(m Mode) bool {
	_, ok := modeInstructions[m]
	return ok
}

const excerptNote = "\n[Note: Excerpt from larger document]"

// Build renders the final prompt submitted to the completion backend. An
// unknown mode degrades to an empty instruction rather than failing.
// isSummary marks the context as a reduction (summary or excerpt) of the
// original document.
func Build(mode Mode, context, query string, isSummary bool) string {
	var b strings.Builder
	b.WriteString("You are StudyPDF. ")
	b.WriteString(modeInstructions[mode])
	b.WriteString("\n\nContext: ")
	b.WriteString(context)
	if isSummary {
		b.WriteString(excerptNote)
	}
	b.WriteString("\n\nQuestion: ")
	b.WriteString(query)
	b.WriteString("\n\nAnswer:")
	return b.String()
}

// Section wraps one document chunk in the fixed per-section summarization
// instruction used by the progressive path.
func Section(chunk string) string {
	return "Summarize this section concisely. Focus on key points.\n\n" + chunk + "\n\nSummary:"
}
