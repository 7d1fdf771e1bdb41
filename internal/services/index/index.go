package index

import (
	"math"
	"sort"
	"time"
)

// Chunk is one bounded-length slice of document text together with its
// embedding vector and origin metadata.
type Chunk struct {
	Content string
	Source  string
	Page    int
	Ordinal int
	Vector  []float32
}

// Index is the searchable per-user artifact. It holds every chunk of the
// user's last indexed document; re-uploads replace it wholesale.
type Index struct {
	Username  string
	Source    string
	PageCount int
	Dim       int
	CreatedAt time.Time
	Chunks    []Chunk
}

// Match is a chunk scored against a query vector.
type Match struct {
	Chunk Chunk
	Score float32
}

// Search returns the topK chunks most similar to the query vector by cosine
// similarity, best first.
func (idx *Index) Search(vector []float32, topK int) []Match {
	if topK <= 0 || len(idx.Chunks) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(idx.Chunks))
	for _, c := range idx.Chunks {
		matches = append(matches, Match{Chunk: c, Score: cosineSimilarity(vector, c.Vector)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK]
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
