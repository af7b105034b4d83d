// Package match scores job text against a stored resume embedding.
// Scoring is plain cosine similarity; the high/low threshold policy lives
// with the orchestrator, not here.
package match

import (
	"context"
	"math"
)

// Store holds one resume embedding per session identifier. It is owned by
// the running session and discarded with it; embeddings are never
// persisted.
type Store struct {
	enc     Encoder
	vectors map[string][]float32
}

func NewStore(enc Encoder) *Store {
	return &Store{
		enc:     enc,
		vectors: make(map[string][]float32),
	}
}

// Embed computes and stores the embedding for text under sessionID,
// overwriting any previous entry.
func (s *Store) Embed(ctx context.Context, sessionID, text string) error {
	vec, err := s.enc.Encode(ctx, text)
	if err != nil {
		return err
	}
	s.vectors[sessionID] = vec
	return nil
}

// Similarity returns the cosine similarity between the stored embedding
// for sessionID and a fresh embedding of text. An unknown session scores
// 0.0 without error.
func (s *Store) Similarity(ctx context.Context, sessionID, text string) (float64, error) {
	stored, ok := s.vectors[sessionID]
	if !ok {
		return 0.0, nil
	}

	vec, err := s.enc.Encode(ctx, text)
	if err != nil {
		return 0.0, err
	}

	return Cosine(stored, vec), nil
}

// Cosine returns the cosine similarity of two vectors, 0.0 when the
// vectors differ in length or either has zero norm.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
