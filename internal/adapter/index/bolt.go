package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"finassist/internal/domain"
)

var (
	bucketChunks     = []byte("chunks")
	bucketEmbeddings = []byte("embeddings")
)

// BoltIndex is a flat vector index with BoltDB persistence. Chunks and
// embeddings live in two parallel buckets keyed by insertion sequence;
// an in-memory copy of both sequences serves searches. Brute-force
// cosine scan is deliberate: the expected corpus is a single annual
// report plus a handful of uploads.
type BoltIndex struct {
	db   *bbolt.DB
	path string

	mu         sync.RWMutex
	chunks     []domain.Chunk
	embeddings [][]float32
}

// Open opens (or creates) the index database at path and restores the
// stored sequences. A missing, corrupt, or mismatched store is logged
// and treated as empty rather than failing construction.
func Open(path string) (*BoltIndex, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open index db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketChunks, bucketEmbeddings} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	idx := &BoltIndex{db: db, path: path}
	if err := idx.load(); err != nil {
		log.Printf("index: discarding stored state: %v", err)
		idx.chunks = nil
		idx.embeddings = nil
	}

	return idx, nil
}

// load restores both sequences in key order. The pair is one atomic
// unit: any decode failure or length mismatch rejects the whole store.
func (s *BoltIndex) load() error {
	var chunks []domain.Chunk
	var embeddings [][]float32

	err := s.db.View(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketChunks).ForEach(func(_, v []byte) error {
			var c domain.Chunk
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("corrupt chunk record: %w", err)
			}
			chunks = append(chunks, c)
			return nil
		}); err != nil {
			return err
		}

		return tx.Bucket(bucketEmbeddings).ForEach(func(_, v []byte) error {
			var e []float32
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("corrupt embedding record: %w", err)
			}
			embeddings = append(embeddings, e)
			return nil
		})
	})
	if err != nil {
		return err
	}

	if len(chunks) != len(embeddings) {
		return fmt.Errorf("parallel sequences out of step: %d chunks, %d embeddings", len(chunks), len(embeddings))
	}

	s.chunks = chunks
	s.embeddings = embeddings
	return nil
}

// Add appends records in order. The in-memory append happens first and
// stays visible to searches even when persistence fails; a write
// failure is reported as *domain.PersistenceError.
func (s *BoltIndex) Add(chunks []domain.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := len(s.chunks)
	s.chunks = append(s.chunks, chunks...)
	s.embeddings = append(s.embeddings, embeddings...)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		cb := tx.Bucket(bucketChunks)
		eb := tx.Bucket(bucketEmbeddings)

		for i := range chunks {
			key := seqKey(base + i)

			cdata, err := json.Marshal(chunks[i])
			if err != nil {
				return err
			}
			if err := cb.Put(key, cdata); err != nil {
				return err
			}

			edata, err := json.Marshal(embeddings[i])
			if err != nil {
				return err
			}
			if err := eb.Put(key, edata); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &domain.PersistenceError{Path: s.path, Err: err}
	}

	return nil
}

// Search scores every stored embedding against the query and returns
// the topK records by descending cosine similarity. Ties keep
// insertion order. An empty index or nil query yields no results.
func (s *BoltIndex) Search(query []float32, topK int) []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) == 0 || len(s.chunks) == 0 || topK <= 0 {
		return nil
	}

	results := make([]domain.SearchResult, len(s.chunks))
	for i := range s.chunks {
		results[i] = domain.SearchResult{
			Chunk: s.chunks[i],
			Score: cosineSimilarity(query, s.embeddings[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

// Count returns the number of stored records.
func (s *BoltIndex) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Close closes the underlying database.
func (s *BoltIndex) Close() error {
	return s.db.Close()
}

func seqKey(n int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(n))
	return key
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
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

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
