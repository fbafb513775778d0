package port

import "finassist/internal/domain"

// VectorIndex is a flat store of (chunk, embedding) pairs with
// brute-force nearest-neighbor search. The two sequences are kept in
// lockstep and persisted together.
type VectorIndex interface {
	// Add appends records in order and persists the full sequence.
	// A *domain.PersistenceError means storage could not be written;
	// the in-memory append is still visible to later searches.
	Add(chunks []domain.Chunk, embeddings [][]float32) error

	// Search returns the topK stored records by descending cosine
	// similarity, ties broken by insertion order. An empty index or
	// nil query yields an empty result, never an error.
	Search(query []float32, topK int) []domain.SearchResult

	// Count returns the number of stored records.
	Count() int

	Close() error
}
