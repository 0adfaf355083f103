package prompt

import (
	"strings"
	"testing"
)

func TestBuild_ModeInstructions(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeHomework, "Explain step-by-step. Give clear answers."},
		{ModeResearch, "Summarize methods, results, limitations precisely."},
		{ModeLecture, "Extract key points. Explain simply with examples."},
		{ModeFlashcards, "Generate short Q&A flashcards."},
	}
	for _, tc := range cases {
		got := Build(tc.mode, "ctx", "q", false)
		if !strings.Contains(got, tc.want) {
			t.Errorf("mode %q: expected prompt to contain %q, got %q", tc.mode, tc.want, got)
		}
	}
}

func TestBuild_UnknownModeEmptyInstruction(t *testing.T) {
	got := Build(Mode("Cookbook"), "some context", "some question", false)
	want := "You are StudyPDF. \n\nContext: some context\n\nQuestion: some question\n\nAnswer:"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuild_ExcerptNoteOnlyWhenSummary(t *testing.T) {
	direct := Build(ModeResearch, "ctx", "q", false)
	if strings.Contains(direct, "[Note: Excerpt from larger document]") {
		t.Errorf("direct prompt must not carry the excerpt note, got %q", direct)
	}

	reduced := Build(ModeResearch, "ctx", "q", true)
	if !strings.Contains(reduced, "Context: ctx\n[Note: Excerpt from larger document]") {
		t.Errorf("reduced prompt missing excerpt note after context, got %q", reduced)
	}
}

func TestBuild_EndsWithAnswerCue(t *testing.T) {
	got := Build(ModeLecture, "ctx", "q", true)
	if !strings.HasSuffix(got, "\n\nAnswer:") {
		t.Errorf("expected prompt to end with answer cue, got %q", got)
	}
}

func TestValid(t *testing.T) {
	for _, m := range []Mode{ModeHomework, ModeResearch, ModeLecture, ModeFlashcards} {
		if !Valid(m) {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if Valid(Mode("homework / problem")) {
		t.Error("mode matching is case-sensitive; lowercased variant should be invalid")
	}
	if Valid(Mode("")) {
		t.Error("empty mode should be invalid")
	}
}

func TestSection_WrapsChunk(t *testing.T) {
	got := Section("chunk body here")
	want := "Summarize this section concisely. Focus on key points.\n\nchunk body here\n\nSummary:"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestResolveQuickAction(t *testing.T) {
	q, ok := ResolveQuickAction("flashcards")
	if !ok {
		t.Fatal("expected flashcards quick action to resolve")
	}
	if !strings.Contains(q, "flashcards") {
		t.Errorf("expected resolved query to mention flashcards, got %q", q)
	}
	if _, ok := ResolveQuickAction("nope"); ok {
		t.Error("expected unknown quick action to not resolve")
	}
}
