// Package vector provides the similarity primitives used to rank stored
// fragments against a query embedding.
package vector

import (
	"math"

	"github.com/Danilepez/chat-pdf-ai/types"
)

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
// A zero-magnitude vector (or a length mismatch) yields 0: a zero vector is
// treated as maximally dissimilar rather than an error.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// BestMatch scans fragments in the given order and returns the one with the
// strictly highest cosine similarity to the query vector, together with its
// score. Ties resolve to the earliest fragment because the comparison is a
// strict >. Returns nil when fragments is empty.
func BestMatch(query []float32, fragments []types.Fragment) (*types.Fragment, float32) {
	var best *types.Fragment
	bestScore := float32(math.Inf(-1))
	for i := range fragments {
		score := CosineSimilarity(query, fragments[i].Embedding)
		if score > bestScore {
			best = &fragments[i]
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestScore
}
