package relevance

import (
	"strings"
	"testing"
)

func TestQueryTerms_LengthCutoffAndLowercasing(t *testing.T) {
	terms := QueryTerms("What IS the Neural Network's key idea?")
	want := []string{"what", "neural", "network", "idea"}
	if len(terms) != len(want) {
		t.Fatalf("expected terms %v, got %v", want, terms)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("term %d: expected %q, got %q", i, want[i], terms[i])
		}
	}
}

func TestQueryTerms_EmptyQuery(t *testing.T) {
	if terms := QueryTerms(""); len(terms) != 0 {
		t.Errorf("expected no terms, got %v", terms)
	}
	// All words at or under the length cutoff.
	if terms := QueryTerms("is it an owl"); len(terms) != 0 {
		t.Errorf("expected no terms for short words, got %v", terms)
	}
}

func TestFindRelevantContext_PicksMatchingParagraph(t *testing.T) {
	matching := "Photosynthesis converts light. Photosynthesis needs chlorophyll. " +
		"Photosynthesis occurs in leaves. Photosynthesis produces oxygen. Photosynthesis is vital."
	unrelated := "The stock market closed higher today on strong earnings."
	text := matching + "\n\n" + unrelated

	got := FindRelevantContext(text, "explain photosynthesis", 3500)
	if !strings.Contains(got, "Photosynthesis converts light") {
		t.Errorf("expected matching paragraph in context, got %q", got)
	}
	if strings.Contains(got, "stock market") {
		t.Errorf("expected zero-score paragraph to be excluded, got %q", got)
	}
}

func TestFindRelevantContext_OrdersByScoreDescending(t *testing.T) {
	onceMatch := "The experiment used a control group."
	fiveMatch := "experiment experiment experiment experiment experiment"
	text := onceMatch + "\n\n" + fiveMatch

	got := FindRelevantContext(text, "describe the experiment", 3500)
	first := strings.Index(got, fiveMatch)
	second := strings.Index(got, onceMatch)
	if first == -1 || second == -1 {
		t.Fatalf("expected both paragraphs in context, got %q", got)
	}
	if first > second {
		t.Errorf("expected higher-scoring paragraph first, got %q", got)
	}
}

func TestFindRelevantContext_StableTieOrder(t *testing.T) {
	a := "First gravity paragraph with one mention."
	b := "Second gravity paragraph with one mention."
	c := "Third gravity paragraph with one mention."
	text := a + "\n\n" + b + "\n\n" + c

	got := FindRelevantContext(text, "what about gravity", 3500)
	ia, ib, ic := strings.Index(got, a), strings.Index(got, b), strings.Index(got, c)
	if ia == -1 || ib == -1 || ic == -1 {
		t.Fatalf("expected all tied paragraphs in context, got %q", got)
	}
	if !(ia < ib && ib < ic) {
		t.Errorf("equal scores must keep document order, got positions %d %d %d", ia, ib, ic)
	}
}

func TestFindRelevantContext_RespectsBudget(t *testing.T) {
	// Many matching paragraphs, small budget: output must stay under it.
	para := "quantum " + strings.Repeat("filler words here ", 10)
	parts := make([]string, 50)
	for i := range parts {
		parts[i] = para
	}
	text := strings.Join(parts, "\n\n")

	budget := 100 // 400 chars
	got := FindRelevantContext(text, "quantum effects", budget)
	if len(got) > budget*4 {
		t.Errorf("context length %d exceeds budget %d chars", len(got), budget*4)
	}
	if got == "" {
		t.Error("expected non-empty context")
	}
}

func TestFindRelevantContext_FallbackToFirstChunk(t *testing.T) {
	text := "Alpha beta gamma delta.\n\nEpsilon zeta eta theta."
	got := FindRelevantContext(text, "unrelatedterm", 3500)

	want := strings.Join(strings.Fields(text), " ")
	if got != want {
		t.Errorf("expected first chunk fallback %q, got %q", want, got)
	}
}

func TestFindRelevantContext_EmptyDocument(t *testing.T) {
	if got := FindRelevantContext("", "anything here", 3500); got != "" {
		t.Errorf("expected empty context for empty document, got %q", got)
	}
}

func TestFindRelevantContext_CaseInsensitiveScoring(t *testing.T) {
	text := "MITOCHONDRIA are the powerhouse of the cell.\n\nNothing else here."
	got := FindRelevantContext(text, "mitochondria function", 3500)
	if !strings.Contains(got, "MITOCHONDRIA") {
		t.Errorf("expected case-insensitive match, got %q", got)
	}
}
