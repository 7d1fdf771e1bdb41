package index

import (
	"math"
	"testing"
)

func TestIndex_Search(t *testing.T) {
	idx := &Index{
		Dim: 2,
		Chunks: []Chunk{
			{Content: "east", Vector: []float32{1, 0}},
			{Content: "north", Vector: []float32{0, 1}},
			{Content: "northeast", Vector: []float32{1, 1}},
		},
	}

	matches := idx.Search([]float32{1, 0}, 2)
	if len(matches) != 2 {
		t.Fatalf("Search() returned %d matches, want 2", len(matches))
	}
	if matches[0].Chunk.Content != "east" {
		t.Errorf("best match = %q, want east", matches[0].Chunk.Content)
	}
	if matches[1].Chunk.Content != "northeast" {
		t.Errorf("second match = %q, want northeast", matches[1].Chunk.Content)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("scores not descending: %v then %v", matches[0].Score, matches[1].Score)
	}
}

func TestIndex_SearchTopKClamped(t *testing.T) {
	idx := &Index{Chunks: []Chunk{{Content: "only", Vector: []float32{1}}}}

	matches := idx.Search([]float32{1}, 5)
	if len(matches) != 1 {
		t.Fatalf("Search(topK=5) returned %d matches, want 1", len(matches))
	}

	if got := idx.Search([]float32{1}, 0); got != nil {
		t.Errorf("Search(topK=0) = %v, want nil", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
