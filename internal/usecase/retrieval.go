package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"finassist/internal/adapter/extract"
	"finassist/internal/domain"
	"finassist/internal/port"
)

// RetrievalService orchestrates extraction, chunking, embedding and
// the vector index: documents in, ranked context out.
type RetrievalService struct {
	extractor port.Extractor
	chunker   port.Chunker
	embedder  port.Embedder
	index     port.VectorIndex
	fetcher   port.DefaultDocumentFetcher

	seedMu sync.Mutex
	seeded bool
}

func NewRetrievalService(
	extractor port.Extractor,
	chunker port.Chunker,
	embedder port.Embedder,
	index port.VectorIndex,
	fetcher port.DefaultDocumentFetcher,
) *RetrievalService {
	return &RetrievalService{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
		fetcher:   fetcher,
	}
}

// IngestProgress reports per-file progress during ingestion.
type IngestProgress func(processed, total int, path string)

// Ingest extracts, chunks, embeds and stores the given files. Files
// that cannot be read or extracted are skipped with a log line; the
// batch never aborts for one bad document. Returns the number of
// chunks stored across all successfully processed files.
func (s *RetrievalService) Ingest(ctx context.Context, paths []string, progress IngestProgress) (int, error) {
	var chunks []domain.Chunk

	for i, path := range paths {
		if progress != nil {
			progress(i, len(paths), path)
		}

		format, ok := extract.FormatForPath(path)
		if !ok {
			log.Printf("ingest: skipping %s: unsupported extension", path)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("ingest: skipping %s: %v", path, err)
			continue
		}

		text, err := s.extractor.Extract(data, format)
		if err != nil {
			var extractErr *domain.ExtractionError
			if errors.As(err, &extractErr) {
				log.Printf("ingest: skipping %s: %v", path, err)
				continue
			}
			return 0, err
		}

		for n, window := range s.chunker.Chunk(text) {
			chunks = append(chunks, domain.Chunk{
				Content:   window,
				Source:    path,
				ChunkID:   n,
				FileType:  string(format),
				IsDefault: false,
			})
		}
	}

	if progress != nil {
		progress(len(paths), len(paths), "")
	}

	if err := s.store(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// store embeds a chunk batch and appends it to the index. A failed
// persistence write is logged and absorbed: the in-memory index keeps
// serving the new records.
func (s *RetrievalService) store(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}

	if err := s.index.Add(chunks, embeddings); err != nil {
		var persistErr *domain.PersistenceError
		if errors.As(err, &persistErr) {
			log.Printf("ingest: %v (serving from memory)", err)
			return nil
		}
		return err
	}
	return nil
}

// Retrieve embeds the query and formats the top-k matches into a
// labeled context block. The financial flag is the classifier's
// verdict on the query text alone, independent of whether anything was
// found; callers use an empty context plus the flag to decide on a web
// fallback.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topK int) (string, bool) {
	if topK <= 0 {
		topK = 3
	}
	isFinancial := IsFinancialQuery(query)

	s.ensureSeeded(ctx)

	embedding, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
			log.Printf("retrieve: query embedding failed: %v", err)
		}
		return "", isFinancial
	}

	results := s.index.Search(embedding, topK)
	if len(results) == 0 {
		return "", isFinancial
	}

	var sb strings.Builder
	sb.WriteString("Relevant information from documents:\n\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "Source %d (from %s):\n", i+1, filepath.Base(r.Chunk.Source))
		fmt.Fprintf(&sb, "%s\n\n", r.Chunk.Content)
	}

	return sb.String(), isFinancial
}

// ensureSeeded lazily ingests the default annual report the first time
// an empty index is consulted, so the assistant always has baseline
// context. A failed fetch leaves the index empty; the next call tries
// again.
func (s *RetrievalService) ensureSeeded(ctx context.Context) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	if s.seeded || s.index.Count() > 0 {
		s.seeded = true
		return
	}

	text := s.fetcher.Fetch()
	if text == "" {
		return
	}

	var chunks []domain.Chunk
	for n, window := range s.chunker.Chunk(text) {
		chunks = append(chunks, domain.Chunk{
			Content:   window,
			Source:    domain.DefaultSourceName,
			ChunkID:   n,
			FileType:  string(port.FormatPDF),
			IsDefault: true,
		})
	}

	if err := s.store(ctx, chunks); err != nil {
		log.Printf("seed default document: %v", err)
		return
	}
	s.seeded = true
}

// Count exposes the number of indexed chunks.
func (s *RetrievalService) Count() int {
	return s.index.Count()
}
