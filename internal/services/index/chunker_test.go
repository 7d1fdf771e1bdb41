package index

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"collapse whitespace", "hello\n\n  world\t!", "hello world !"},
		{"null bytes", "hello\x00world", "hello world"},
		{"only whitespace", "  \n\t ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.in); got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestChunkText(t *testing.T) {
	text := strings.Repeat("a", 250)

	// Step is 80, so chunks start at offsets 0, 80 and 160.
	chunks := chunkText(text, 100, 20)
	if len(chunks) != 3 {
		t.Fatalf("chunkText returned %d chunks, want 3", len(chunks))
	}
	for i, c := range chunks[:2] {
		if len([]rune(c)) != 100 {
			t.Errorf("chunk %d length = %d, want 100", i, len([]rune(c)))
		}
	}
	if got := len([]rune(chunks[2])); got != 90 {
		t.Errorf("last chunk length = %d, want 90", got)
	}
}

func TestChunkText_Overlap(t *testing.T) {
	text := "0123456789"

	chunks := chunkText(text, 6, 2)
	want := []string{"012345", "456789"}
	if len(chunks) != len(want) {
		t.Fatalf("chunkText returned %v, want %v", chunks, want)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestChunkText_ShortInput(t *testing.T) {
	chunks := chunkText("short", 1000, 200)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Fatalf("chunkText(short) = %v, want single chunk", chunks)
	}
}

func TestChunkText_Empty(t *testing.T) {
	if chunks := chunkText("", 1000, 200); chunks != nil {
		t.Fatalf("chunkText(empty) = %v, want nil", chunks)
	}
}

func TestChunkText_MultibyteRunes(t *testing.T) {
	text := strings.Repeat("日", 15)

	chunks := chunkText(text, 10, 0)
	if len(chunks) != 2 {
		t.Fatalf("chunkText returned %d chunks, want 2", len(chunks))
	}
	if got := len([]rune(chunks[0])); got != 10 {
		t.Errorf("first chunk rune length = %d, want 10", got)
	}
	if got := len([]rune(chunks[1])); got != 5 {
		t.Errorf("second chunk rune length = %d, want 5", got)
	}
}
