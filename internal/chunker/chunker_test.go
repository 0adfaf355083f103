package chunker

import (
	"strings"
	"testing"
)

func TestChunkText_SmallTextSingleChunk(t *testing.T) {
	text := "one two three four five"
	chunks := ChunkText(text, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected chunk %q, got %q", text, chunks[0])
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	if chunks := ChunkText("", 100); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := ChunkText("   \n\t  ", 100); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestChunkText_RespectsCharacterBudget(t *testing.T) {
	// 500 five-letter words, budget of 10 tokens = 40 chars per chunk.
	text := strings.TrimSpace(strings.Repeat("alpha ", 500))
	budget := 10
	chunks := ChunkText(text, budget)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > budget*4 {
			t.Errorf("chunk %d: length %d exceeds budget %d chars", i, len(c), budget*4)
		}
	}
}

func TestChunkText_PreservesWordSequence(t *testing.T) {
	text := "The quick   brown fox\njumps over\n\nthe lazy dog again and again until done"
	chunks := ChunkText(text, 5)

	rejoined := strings.Join(chunks, " ")
	got := strings.Fields(rejoined)
	want := strings.Fields(text)

	if len(got) != len(want) {
		t.Fatalf("expected %d words after rejoin, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestChunkText_OversizedWordKeptWhole(t *testing.T) {
	// A single word longer than the entire budget must land in its own chunk,
	// not be split or dropped.
	long := strings.Repeat("z", 100)
	text := "short " + long + " tail"
	chunks := ChunkText(text, 5) // 20-char budget

	found := false
	for _, c := range chunks {
		if c == long {
			found = true
		}
		if strings.Contains(c, long) && c != long {
			t.Errorf("oversized word should be alone in its chunk, got %q", c)
		}
	}
	if !found {
		t.Errorf("expected a chunk holding exactly the oversized word, got %v", chunks)
	}
}

func TestChunkText_ChunkCountScalesWithInput(t *testing.T) {
	// ~24000 chars at a 3500-token (14000-char) budget should give 2 chunks.
	text := strings.TrimSpace(strings.Repeat("word ", 4800))
	chunks := ChunkText(text, 3500)
	if len(chunks) != 2 {
		t.Errorf("expected 2 chunks, got %d", len(chunks))
	}
}
